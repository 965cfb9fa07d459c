package domain

import "context"

// Wallet holds a user's balance in one currency. Balance is stored in minor
// units (cents, satoshi, ...) to avoid floating point drift.
type Wallet struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Currency string `gorm:"size:10;not null" json:"currency"`
	Balance  int64  `gorm:"not null;default:0" json:"balance"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Transaction kinds and states.
const (
	TxCredit = "credit"
	TxDebit  = "debit"

	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

// Transaction is a single credit or debit against a wallet.
type Transaction struct {
	BaseModel
	Reference string  `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	WalletID  uint    `gorm:"index;not null" json:"walletId"`
	Amount    int64   `gorm:"not null" json:"amount"`
	Kind      string  `gorm:"size:10;not null" json:"kind"`
	Status    string  `gorm:"size:20;not null;default:pending" json:"status"`
	Note      string  `gorm:"size:255" json:"note"`
	Wallet    *Wallet `gorm:"foreignKey:WalletID" json:"wallet,omitempty"`
}

// WalletRepository defines the data access interface for wallets.
type WalletRepository interface {
	Create(ctx context.Context, wallet *Wallet) error
	GetByID(ctx context.Context, id uint) (*Wallet, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Wallet], error)
	Update(ctx context.Context, wallet *Wallet) error
	Delete(ctx context.Context, id uint) error
}

// WalletService defines the business logic interface for wallets.
type WalletService interface {
	CreateWallet(ctx context.Context, userID uint, currency string) (*Wallet, error)
	GetWallet(ctx context.Context, id uint) (*Wallet, error)
	ListWallets(ctx context.Context, req PageRequest) (*PageResult[Wallet], error)
	ToggleWalletStatus(ctx context.Context, id uint) (*Wallet, error)
	DeleteWallet(ctx context.Context, id uint) error
}

// TransactionRepository defines the data access interface for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uint) (*Transaction, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Transaction], error)
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id uint) error
}

// TransactionService defines the business logic interface for transactions.
// Settling a pending transaction applies the amount to the wallet balance.
type TransactionService interface {
	CreateTransaction(ctx context.Context, walletID uint, amount int64, kind, note string) (*Transaction, error)
	GetTransaction(ctx context.Context, id uint) (*Transaction, error)
	ListTransactions(ctx context.Context, req PageRequest) (*PageResult[Transaction], error)
	SettleTransaction(ctx context.Context, id uint) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
}
