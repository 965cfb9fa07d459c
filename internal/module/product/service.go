package product

import (
	"context"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// productService implements domain.ProductService.
type productService struct {
	repo domain.ProductRepository
}

// NewProductService creates a new ProductService with the given repository.
func NewProductService(repo domain.ProductRepository) domain.ProductService {
	return &productService{repo: repo}
}

// CreateProduct validates input and persists a new product. The price is in
// minor units.
func (s *productService) CreateProduct(ctx context.Context, name, sku, category string, price int64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)

	if name == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "product name is required", nil)
	}
	if sku == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "sku is required", nil)
	}
	if price < 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "price must not be negative", nil)
	}

	p := &domain.Product{
		Name:     name,
		SKU:      sku,
		Category: strings.TrimSpace(category),
		Price:    price,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct retrieves a product by ID.
func (s *productService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts returns a paginated list of products.
func (s *productService) ListProducts(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Product], error) {
	return s.repo.List(ctx, req)
}

// UpdateProduct loads the existing product, applies changes, and persists
// them. The SKU is immutable once assigned.
func (s *productService) UpdateProduct(ctx context.Context, id uint, name, category string, price int64) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "product name is required", nil)
	}
	if price < 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "price must not be negative", nil)
	}

	p.Name = name
	p.Category = strings.TrimSpace(category)
	p.Price = price

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ToggleProductStatus flips the active flag and returns the updated product.
func (s *productService) ToggleProductStatus(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.IsActive = !p.IsActive
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product by ID.
func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
