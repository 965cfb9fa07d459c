package role

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

var (
	searchColumns       = []string{"name", "slug", "description"}
	allowedFilterFields = []string{"isActive"}
)

// roleRepository implements domain.RoleRepository using GORM.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository backed by the given GORM database.
func NewRoleRepository(db *gorm.DB) domain.RoleRepository {
	return &roleRepository{db: db}
}

// Create inserts a new role, including any assigned permissions.
func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a role with its permissions preloaded.
func (r *roleRepository) GetByID(ctx context.Context, id uint) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		First(&role, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &role, nil
}

// GetBySlug retrieves a role by its slug with permissions preloaded.
func (r *roleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Where("slug = ?", slug).
		First(&role).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &role, nil
}

// List returns a paginated, searched, and filtered page of roles.
func (r *roleRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Role], error) {
	base := r.db.WithContext(ctx).Model(&domain.Role{}).
		Scopes(
			pkg.Search(req, searchColumns),
			pkg.Filter(req, allowedFilterFields),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var roles []domain.Role
	err := base.
		Preload("Permissions").
		Scopes(pkg.Paginate(req)).
		Order("id DESC").
		Find(&roles).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(roles, total, req), nil
}

// Update saves changes to an existing role. Permission assignments are
// managed separately via ReplacePermissions.
func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	err := r.db.WithContext(ctx).
		Omit("Permissions").
		Save(role).Error
	if err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// ReplacePermissions swaps the role's granted permissions for the given set.
func (r *roleRepository) ReplacePermissions(ctx context.Context, role *domain.Role, perms []domain.Permission) error {
	err := r.db.WithContext(ctx).
		Model(role).
		Association("Permissions").
		Replace(perms)
	if err != nil {
		return pkg.MapDBError(err)
	}
	role.Permissions = perms
	return nil
}

// Delete removes a role by ID.
func (r *roleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Role{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPermissions returns the full permission catalog.
func (r *roleRepository) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	var perms []domain.Permission
	err := r.db.WithContext(ctx).
		Order("action ASC, subject ASC").
		Find(&perms).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return perms, nil
}

// FindPermissions loads the permissions for the given IDs.
func (r *roleRepository) FindPermissions(ctx context.Context, ids []uint) ([]domain.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var perms []domain.Permission
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&perms).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return perms, nil
}
