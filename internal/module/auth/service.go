package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*domain.Admin, error)
	Profile(ctx context.Context, adminID uint) (*domain.Admin, error)
}

// LoginResult is a successful sign-in: the bearer token plus the signed-in
// admin with roles and permissions preloaded.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *domain.Admin
}

// RegisterInput carries the fields accepted at self-registration.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Phone     string
	Password  string
}

// authService implements Service.
type authService struct {
	tokens    *TokenManager
	adminRepo domain.AdminRepository
}

// NewService creates a new auth Service.
func NewService(tokens *TokenManager, adminRepo domain.AdminRepository) Service {
	return &authService{tokens: tokens, adminRepo: adminRepo}
}

// Login authenticates an admin by email and password and returns a bearer token.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// Don't reveal whether the account exists; always return unauthorized.
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewAppError(domain.CodeUnauthorized, "invalid credentials", nil)
	}

	if !admin.IsActive {
		return nil, domain.NewAppError(domain.CodeUnauthorized, "account is deactivated", nil)
	}

	slugs := make([]string, 0, len(admin.Roles))
	for _, role := range admin.Roles {
		slugs = append(slugs, role.Slug)
	}

	token, expiresAt, err := s.tokens.Generate(admin.ID, slugs)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// Register creates a new admin account with no roles assigned; capabilities
// are granted later through role assignment.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.Admin, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	admin := domain.Admin{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Username:     input.Username,
		Email:        input.Email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.adminRepo.Create(ctx, &admin); err != nil {
		return nil, err
	}

	return &admin, nil
}

// Profile returns the signed-in admin with roles and permissions preloaded.
// It backs the session verification endpoint: a deleted or deactivated
// account fails here, forcing the client to sign out.
func (s *authService) Profile(ctx context.Context, adminID uint) (*domain.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeUnauthorized, "account no longer exists", nil)
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, domain.NewAppError(domain.CodeUnauthorized, "account is deactivated", nil)
	}
	return admin, nil
}

// validateRegisterInput validates registration input beyond what binding tags cover.
func validateRegisterInput(input RegisterInput) error {
	if utf8.RuneCountInString(input.Username) < 3 {
		return domain.NewAppError(domain.CodeValidation, "username must be at least 3 characters", nil)
	}
	if utf8.RuneCountInString(input.Username) > 100 {
		return domain.NewAppError(domain.CodeValidation, "username must not exceed 100 characters", nil)
	}
	addr, err := mail.ParseAddress(input.Email)
	if err != nil || addr.Name != "" || addr.Address != input.Email {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	if len(input.Password) < 8 {
		return domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}
	if len(input.Password) > 72 {
		return domain.NewAppError(domain.CodeValidation, "password must not exceed 72 characters", nil)
	}
	return nil
}
