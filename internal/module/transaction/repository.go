package transaction

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

var (
	searchColumns       = []string{"reference", "note"}
	allowedFilterFields = []string{"status", "kind", "walletId"}
)

// transactionRepository implements domain.TransactionRepository using GORM.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new TransactionRepository backed by the
// given GORM database.
func NewTransactionRepository(db *gorm.DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts a new transaction.
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a transaction with its wallet preloaded.
func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := r.db.WithContext(ctx).
		Preload("Wallet").
		First(&tx, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &tx, nil
}

// List returns a paginated, searched, and filtered page of transactions.
func (r *transactionRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Transaction], error) {
	base := r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Scopes(
			pkg.Search(req, searchColumns),
			pkg.Filter(req, allowedFilterFields),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var txs []domain.Transaction
	err := base.
		Preload("Wallet").
		Scopes(pkg.Paginate(req)).
		Order("id DESC").
		Find(&txs).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(txs, total, req), nil
}

// Update saves changes to an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	if err := r.db.WithContext(ctx).Omit("Wallet").Save(tx).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a transaction by ID.
func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Transaction{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
