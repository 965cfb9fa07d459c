package transaction

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// transactionService implements domain.TransactionService.
type transactionService struct {
	db         *gorm.DB
	repo       domain.TransactionRepository
	walletRepo domain.WalletRepository
}

// NewTransactionService creates a new TransactionService. The database handle
// is used to settle transactions atomically against the wallet balance.
func NewTransactionService(db *gorm.DB, repo domain.TransactionRepository, walletRepo domain.WalletRepository) domain.TransactionService {
	return &transactionService{db: db, repo: repo, walletRepo: walletRepo}
}

// CreateTransaction records a pending credit or debit against an active
// wallet. The amount is in minor units and must be positive; the direction is
// carried by the kind.
func (s *transactionService) CreateTransaction(ctx context.Context, walletID uint, amount int64, kind, note string) (*domain.Transaction, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != domain.TxCredit && kind != domain.TxDebit {
		return nil, domain.NewAppError(domain.CodeValidation, "kind must be credit or debit", nil)
	}
	if amount <= 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "amount must be positive", nil)
	}

	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "unknown wallet", nil)
		}
		return nil, err
	}
	if !wallet.IsActive {
		return nil, domain.NewAppError(domain.CodeValidation, "wallet is inactive", nil)
	}

	tx := &domain.Transaction{
		Reference: uuid.NewString(),
		WalletID:  walletID,
		Amount:    amount,
		Kind:      kind,
		Status:    domain.TxPending,
		Note:      strings.TrimSpace(note),
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *transactionService) GetTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

// ListTransactions returns a paginated list of transactions.
func (s *transactionService) ListTransactions(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Transaction], error) {
	return s.repo.List(ctx, req)
}

// SettleTransaction applies a pending transaction to its wallet balance and
// marks it completed, both inside one database transaction. A debit that
// would overdraw the wallet marks the transaction failed instead.
func (s *transactionService) SettleTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status != domain.TxPending {
		return nil, domain.NewAppError(domain.CodeValidation, "transaction is already settled", nil)
	}

	err = pkg.WithTx(s.db.WithContext(ctx), func(dbtx *gorm.DB) error {
		var wallet domain.Wallet
		if err := dbtx.First(&wallet, tx.WalletID).Error; err != nil {
			return pkg.MapDBError(err)
		}
		if !wallet.IsActive {
			return domain.NewAppError(domain.CodeValidation, "wallet is inactive", nil)
		}

		delta := tx.Amount
		if tx.Kind == domain.TxDebit {
			delta = -delta
		}

		if wallet.Balance+delta < 0 {
			tx.Status = domain.TxFailed
			return dbtx.Model(tx).Update("status", tx.Status).Error
		}

		wallet.Balance += delta
		if err := dbtx.Model(&wallet).Update("balance", wallet.Balance).Error; err != nil {
			return err
		}

		tx.Status = domain.TxCompleted
		return dbtx.Model(tx).Update("status", tx.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// DeleteTransaction removes a transaction. Completed transactions are part of
// the ledger and cannot be deleted.
func (s *transactionService) DeleteTransaction(ctx context.Context, id uint) error {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tx.Status == domain.TxCompleted {
		return domain.NewAppError(domain.CodeValidation, "completed transactions cannot be deleted", nil)
	}
	return s.repo.Delete(ctx, id)
}
