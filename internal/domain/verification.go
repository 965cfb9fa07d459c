package domain

import "context"

// Verification document states.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// Verification is a KYC document submitted by a user for review.
type Verification struct {
	BaseModel
	UserID       uint   `gorm:"index;not null" json:"userId"`
	DocumentType string `gorm:"size:50;not null" json:"documentType"`
	FileName     string `gorm:"size:255;not null" json:"fileName"`
	URL          string `gorm:"size:512;not null" json:"url"`
	Size         int64  `json:"size"`
	Status       string `gorm:"size:20;not null;default:pending" json:"status"`
	User         *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// VerificationRepository defines the data access interface for verifications.
type VerificationRepository interface {
	Create(ctx context.Context, v *Verification) error
	GetByID(ctx context.Context, id uint) (*Verification, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Verification], error)
	Update(ctx context.Context, v *Verification) error
	Delete(ctx context.Context, id uint) error
}

// VerificationService defines the business logic interface for verifications.
// Approving a verification marks the owning user's KYC status as verified;
// withdrawing the approval flips it back to pending.
type VerificationService interface {
	SubmitVerification(ctx context.Context, userID uint, documentType, fileName, url string, size int64) (*Verification, error)
	GetVerification(ctx context.Context, id uint) (*Verification, error)
	ListVerifications(ctx context.Context, req PageRequest) (*PageResult[Verification], error)
	ToggleVerificationStatus(ctx context.Context, id uint) (*Verification, error)
	RejectVerification(ctx context.Context, id uint) (*Verification, error)
	DeleteVerification(ctx context.Context, id uint) error
}
