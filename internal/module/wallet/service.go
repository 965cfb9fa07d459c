package wallet

import (
	"context"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// walletService implements domain.WalletService.
type walletService struct {
	repo     domain.WalletRepository
	userRepo domain.UserRepository
}

// NewWalletService creates a new WalletService with the given repositories.
func NewWalletService(repo domain.WalletRepository, userRepo domain.UserRepository) domain.WalletService {
	return &walletService{repo: repo, userRepo: userRepo}
}

// CreateWallet opens an empty wallet for an existing user.
func (s *walletService) CreateWallet(ctx context.Context, userID uint, currency string) (*domain.Wallet, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) < 3 || len(currency) > 10 {
		return nil, domain.NewAppError(domain.CodeValidation, "currency must be a 3-10 letter code", nil)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "unknown user", nil)
		}
		return nil, err
	}

	wallet := &domain.Wallet{
		UserID:   userID,
		Currency: currency,
		Balance:  0,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// GetWallet retrieves a wallet by ID.
func (s *walletService) GetWallet(ctx context.Context, id uint) (*domain.Wallet, error) {
	return s.repo.GetByID(ctx, id)
}

// ListWallets returns a paginated list of wallets.
func (s *walletService) ListWallets(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Wallet], error) {
	return s.repo.List(ctx, req)
}

// ToggleWalletStatus flips the active flag. Inactive wallets reject new
// transactions but keep their balance.
func (s *walletService) ToggleWalletStatus(ctx context.Context, id uint) (*domain.Wallet, error) {
	wallet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wallet.IsActive = !wallet.IsActive
	if err := s.repo.Update(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// DeleteWallet removes a wallet. Wallets holding funds cannot be deleted.
func (s *walletService) DeleteWallet(ctx context.Context, id uint) error {
	wallet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wallet.Balance != 0 {
		return domain.NewAppError(domain.CodeValidation, "wallet still holds funds", nil)
	}
	return s.repo.Delete(ctx, id)
}
