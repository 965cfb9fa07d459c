package domain

import "context"

// Product is a catalog entry. Price is stored in minor units.
type Product struct {
	BaseModel
	Name     string `gorm:"size:255;not null" json:"name"`
	SKU      string `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Category string `gorm:"size:100" json:"category"`
	Price    int64  `gorm:"not null" json:"price"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
}

// ProductRepository defines the data access interface for products.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}

// ProductService defines the business logic interface for products.
type ProductService interface {
	CreateProduct(ctx context.Context, name, sku, category string, price int64) (*Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context, req PageRequest) (*PageResult[Product], error)
	UpdateProduct(ctx context.Context, id uint, name, category string, price int64) (*Product, error)
	ToggleProductStatus(ctx context.Context, id uint) (*Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}
