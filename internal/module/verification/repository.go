package verification

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

var (
	searchColumns       = []string{"document_type", "file_name"}
	allowedFilterFields = []string{"status", "userId", "documentType"}
)

// verificationRepository implements domain.VerificationRepository using GORM.
type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new VerificationRepository backed by
// the given GORM database.
func NewVerificationRepository(db *gorm.DB) domain.VerificationRepository {
	return &verificationRepository{db: db}
}

// Create inserts a new verification.
func (r *verificationRepository) Create(ctx context.Context, v *domain.Verification) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a verification with its owning user preloaded.
func (r *verificationRepository) GetByID(ctx context.Context, id uint) (*domain.Verification, error) {
	var v domain.Verification
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&v, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &v, nil
}

// List returns a paginated, searched, and filtered page of verifications.
func (r *verificationRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Verification], error) {
	base := r.db.WithContext(ctx).Model(&domain.Verification{}).
		Scopes(
			pkg.Search(req, searchColumns),
			pkg.Filter(req, allowedFilterFields),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var items []domain.Verification
	err := base.
		Preload("User").
		Scopes(pkg.Paginate(req)).
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(items, total, req), nil
}

// Update saves changes to an existing verification.
func (r *verificationRepository) Update(ctx context.Context, v *domain.Verification) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(v).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a verification by ID.
func (r *verificationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Verification{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
