package product

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

var (
	searchColumns       = []string{"name", "sku", "category"}
	allowedFilterFields = []string{"isActive", "category"}
)

// productRepository implements domain.ProductRepository using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository backed by the given GORM database.
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &p, nil
}

// List returns a paginated, searched, and filtered page of products.
func (r *productRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	base := r.db.WithContext(ctx).Model(&domain.Product{}).
		Scopes(
			pkg.Search(req, searchColumns),
			pkg.Filter(req, allowedFilterFields),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var products []domain.Product
	err := base.
		Scopes(pkg.Paginate(req)).
		Order("id DESC").
		Find(&products).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(products, total, req), nil
}

// Update saves changes to an existing product.
func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
