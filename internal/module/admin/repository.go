package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// Columns searched by the free-text term and filters accepted in List queries.
var (
	searchColumns       = []string{"username", "email", "first_name", "last_name", "phone"}
	allowedFilterFields = []string{"isActive"}
)

// adminRepository implements domain.AdminRepository using GORM.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new AdminRepository backed by the given GORM database.
func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &adminRepository{db: db}
}

// Create inserts a new admin, including any pre-assigned roles.
func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves an admin with roles and their permissions preloaded.
func (r *adminRepository) GetByID(ctx context.Context, id uint) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		First(&admin, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &admin, nil
}

// GetByEmail retrieves an admin by email with roles and permissions preloaded.
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		Where("email = ?", email).
		First(&admin).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &admin, nil
}

// List returns a paginated, searched, and filtered page of admins.
func (r *adminRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Admin], error) {
	base := r.db.WithContext(ctx).Model(&domain.Admin{}).
		Scopes(
			pkg.Search(req, searchColumns),
			pkg.Filter(req, allowedFilterFields),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var admins []domain.Admin
	err := base.
		Preload("Roles.Permissions").
		Scopes(pkg.Paginate(req)).
		Order("id DESC").
		Find(&admins).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(admins, total, req), nil
}

// Update saves changes to an existing admin. Role assignments are managed
// separately via ReplaceRoles.
func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	err := r.db.WithContext(ctx).
		Omit("Roles").
		Save(admin).Error
	if err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// ReplaceRoles swaps the admin's role assignments for the given set.
func (r *adminRepository) ReplaceRoles(ctx context.Context, admin *domain.Admin, roles []domain.Role) error {
	err := r.db.WithContext(ctx).
		Model(admin).
		Association("Roles").
		Replace(roles)
	if err != nil {
		return pkg.MapDBError(err)
	}
	admin.Roles = roles
	return nil
}

// Delete removes an admin by ID.
func (r *adminRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Admin{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
