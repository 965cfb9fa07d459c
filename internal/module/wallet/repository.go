package wallet

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

var (
	searchColumns       = []string{"currency"}
	allowedFilterFields = []string{"isActive", "currency", "userId"}
)

// walletRepository implements domain.WalletRepository using GORM.
type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new WalletRepository backed by the given GORM database.
func NewWalletRepository(db *gorm.DB) domain.WalletRepository {
	return &walletRepository{db: db}
}

// Create inserts a new wallet.
func (r *walletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a wallet with its owning user preloaded.
func (r *walletRepository) GetByID(ctx context.Context, id uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&wallet, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &wallet, nil
}

// List returns a paginated, searched, and filtered page of wallets.
func (r *walletRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Wallet], error) {
	base := r.db.WithContext(ctx).Model(&domain.Wallet{}).
		Scopes(
			pkg.Search(req, searchColumns),
			pkg.Filter(req, allowedFilterFields),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var wallets []domain.Wallet
	err := base.
		Preload("User").
		Scopes(pkg.Paginate(req)).
		Order("id DESC").
		Find(&wallets).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(wallets, total, req), nil
}

// Update saves changes to an existing wallet.
func (r *walletRepository) Update(ctx context.Context, wallet *domain.Wallet) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(wallet).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a wallet by ID.
func (r *walletRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Wallet{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
