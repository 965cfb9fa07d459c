package domain

import "context"

// Admin is a staff account that signs in to the backoffice.
type Admin struct {
	BaseModel
	FirstName    string `gorm:"size:100" json:"firstName"`
	LastName     string `gorm:"size:100" json:"lastName"`
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:32" json:"phone"`
	PasswordHash string `gorm:"size:255" json:"-"`
	IsActive     bool   `gorm:"not null;default:true" json:"isActive"`
	Roles        []Role `gorm:"many2many:admin_roles" json:"roles"`
}

// Name returns the admin's display name, falling back to the username.
func (a *Admin) Name() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	default:
		return a.Username
	}
}

// Permissions flattens the granted permissions of all assigned roles.
// Inactive roles grant nothing.
func (a *Admin) Permissions() []Permission {
	var perms []Permission
	for _, role := range a.Roles {
		if !role.IsActive {
			continue
		}
		perms = append(perms, role.Permissions...)
	}
	return perms
}

// Role groups permissions under a name, e.g. "Administrator" or "Support".
type Role struct {
	BaseModel
	Name        string       `gorm:"size:100;not null" json:"name"`
	Slug        string       `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string       `gorm:"size:255" json:"description"`
	IsActive    bool         `gorm:"not null;default:true" json:"isActive"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions"`
}

// Permission is one grantable capability: an action such as "admin.view",
// optionally scoped to a subject. An empty subject means the action is not
// resource-scoped.
type Permission struct {
	BaseModel
	Action  string `gorm:"size:100;not null;uniqueIndex:idx_permissions_action_subject" json:"action"`
	Subject string `gorm:"size:100;uniqueIndex:idx_permissions_action_subject" json:"subject"`
}

// AdminRepository defines the data access interface for admins.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByID(ctx context.Context, id uint) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Admin], error)
	Update(ctx context.Context, admin *Admin) error
	ReplaceRoles(ctx context.Context, admin *Admin, roles []Role) error
	Delete(ctx context.Context, id uint) error
}

// AdminService defines the business logic interface for admins.
type AdminService interface {
	CreateAdmin(ctx context.Context, input CreateAdminInput) (*Admin, error)
	GetAdmin(ctx context.Context, id uint) (*Admin, error)
	ListAdmins(ctx context.Context, req PageRequest) (*PageResult[Admin], error)
	UpdateAdmin(ctx context.Context, id uint, input UpdateAdminInput) (*Admin, error)
	ToggleAdminStatus(ctx context.Context, id uint) (*Admin, error)
	DeleteAdmin(ctx context.Context, id uint) error
}

// CreateAdminInput carries the fields accepted when creating an admin.
type CreateAdminInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Phone     string
	Password  string
	RoleIDs   []uint
}

// UpdateAdminInput carries the fields accepted when updating an admin.
type UpdateAdminInput struct {
	FirstName string
	LastName  string
	Phone     string
	RoleIDs   []uint
}

// RoleRepository defines the data access interface for roles and permissions.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetBySlug(ctx context.Context, slug string) (*Role, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Role], error)
	Update(ctx context.Context, role *Role) error
	ReplacePermissions(ctx context.Context, role *Role, perms []Permission) error
	Delete(ctx context.Context, id uint) error
	ListPermissions(ctx context.Context) ([]Permission, error)
	FindPermissions(ctx context.Context, ids []uint) ([]Permission, error)
}

// RoleService defines the business logic interface for roles.
type RoleService interface {
	CreateRole(ctx context.Context, name, description string, permissionIDs []uint) (*Role, error)
	GetRole(ctx context.Context, id uint) (*Role, error)
	ListRoles(ctx context.Context, req PageRequest) (*PageResult[Role], error)
	UpdateRole(ctx context.Context, id uint, name, description string, permissionIDs []uint) (*Role, error)
	ToggleRoleStatus(ctx context.Context, id uint) (*Role, error)
	DeleteRole(ctx context.Context, id uint) error
	ListPermissions(ctx context.Context) ([]Permission, error)
}
