package verification

import (
	"context"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// verificationService implements domain.VerificationService.
type verificationService struct {
	repo     domain.VerificationRepository
	userRepo domain.UserRepository
}

// NewVerificationService creates a new VerificationService with the given
// repositories.
func NewVerificationService(repo domain.VerificationRepository, userRepo domain.UserRepository) domain.VerificationService {
	return &verificationService{repo: repo, userRepo: userRepo}
}

// SubmitVerification records a new KYC document for review and moves the
// user's KYC status to pending.
func (s *verificationService) SubmitVerification(ctx context.Context, userID uint, documentType, fileName, url string, size int64) (*domain.Verification, error) {
	documentType = strings.TrimSpace(documentType)
	fileName = strings.TrimSpace(fileName)
	url = strings.TrimSpace(url)

	if documentType == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "document type is required", nil)
	}
	if fileName == "" || url == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "file name and url are required", nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "unknown user", nil)
		}
		return nil, err
	}

	v := &domain.Verification{
		UserID:       userID,
		DocumentType: documentType,
		FileName:     fileName,
		URL:          url,
		Size:         size,
		Status:       domain.VerificationPending,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	if user.KYCStatus == domain.KYCUnverified {
		user.KYCStatus = domain.KYCPending
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// GetVerification retrieves a verification by ID.
func (s *verificationService) GetVerification(ctx context.Context, id uint) (*domain.Verification, error) {
	return s.repo.GetByID(ctx, id)
}

// ListVerifications returns a paginated list of verifications.
func (s *verificationService) ListVerifications(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Verification], error) {
	return s.repo.List(ctx, req)
}

// ToggleVerificationStatus flips a verification between pending and approved
// and keeps the owning user's KYC status in step: approving marks the user
// verified, withdrawing the approval moves them back to pending review.
func (s *verificationService) ToggleVerificationStatus(ctx context.Context, id uint) (*domain.Verification, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status == domain.VerificationRejected {
		return nil, domain.NewAppError(domain.CodeValidation, "rejected verifications cannot be re-opened", nil)
	}

	kyc := domain.KYCVerified
	if v.Status == domain.VerificationApproved {
		v.Status = domain.VerificationPending
		kyc = domain.KYCPending
	} else {
		v.Status = domain.VerificationApproved
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	if err := s.syncUserKYC(ctx, v.UserID, kyc); err != nil {
		return nil, err
	}
	return v, nil
}

// RejectVerification marks a pending verification rejected. The user drops
// back to unverified so they can submit a new document.
func (s *verificationService) RejectVerification(ctx context.Context, id uint) (*domain.Verification, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status != domain.VerificationPending {
		return nil, domain.NewAppError(domain.CodeValidation, "only pending verifications can be rejected", nil)
	}

	v.Status = domain.VerificationRejected
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	if err := s.syncUserKYC(ctx, v.UserID, domain.KYCUnverified); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVerification removes a verification by ID.
func (s *verificationService) DeleteVerification(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *verificationService) syncUserKYC(ctx context.Context, userID uint, status string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.KYCStatus == status {
		return nil
	}
	user.KYCStatus = status
	return s.userRepo.Update(ctx, user)
}
