package admin

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// adminService implements domain.AdminService.
type adminService struct {
	repo     domain.AdminRepository
	roleRepo domain.RoleRepository
}

// NewAdminService creates a new AdminService with the given repositories.
func NewAdminService(repo domain.AdminRepository, roleRepo domain.RoleRepository) domain.AdminService {
	return &adminService{repo: repo, roleRepo: roleRepo}
}

// CreateAdmin validates input, hashes the password, resolves role
// assignments, and persists the new admin.
func (s *adminService) CreateAdmin(ctx context.Context, input domain.CreateAdminInput) (*domain.Admin, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if err := validateIdentity(input.Username, input.Email); err != nil {
		return nil, err
	}
	if len(input.Password) < 8 {
		return nil, domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}

	roles, err := s.resolveRoles(ctx, input.RoleIDs)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	admin := &domain.Admin{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Username:     input.Username,
		Email:        input.Email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		IsActive:     true,
		Roles:        roles,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// GetAdmin retrieves an admin by ID.
func (s *adminService) GetAdmin(ctx context.Context, id uint) (*domain.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAdmins returns a paginated list of admins.
func (s *adminService) ListAdmins(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Admin], error) {
	return s.repo.List(ctx, req)
}

// UpdateAdmin loads the existing admin, applies changes, and persists them.
func (s *adminService) UpdateAdmin(ctx context.Context, id uint, input domain.UpdateAdminInput) (*domain.Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	admin.FirstName = strings.TrimSpace(input.FirstName)
	admin.LastName = strings.TrimSpace(input.LastName)
	admin.Phone = strings.TrimSpace(input.Phone)

	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, err
	}

	if input.RoleIDs != nil {
		roles, err := s.resolveRoles(ctx, input.RoleIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceRoles(ctx, admin, roles); err != nil {
			return nil, err
		}
	}

	return admin, nil
}

// ToggleAdminStatus flips the active flag and returns the updated admin.
func (s *adminService) ToggleAdminStatus(ctx context.Context, id uint) (*domain.Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	admin.IsActive = !admin.IsActive
	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteAdmin removes an admin by ID.
func (s *adminService) DeleteAdmin(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// resolveRoles loads the roles for the given IDs, rejecting unknown ones.
func (s *adminService) resolveRoles(ctx context.Context, ids []uint) ([]domain.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	roles := make([]domain.Role, 0, len(ids))
	for _, id := range ids {
		role, err := s.roleRepo.GetByID(ctx, id)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewAppError(domain.CodeValidation, "unknown role", nil)
			}
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// validateIdentity checks the username and email fields shared by create and update.
func validateIdentity(username, email string) error {
	if utf8.RuneCountInString(username) < 3 {
		return domain.NewAppError(domain.CodeValidation, "username must be at least 3 characters", nil)
	}
	if utf8.RuneCountInString(username) > 100 {
		return domain.NewAppError(domain.CodeValidation, "username must not exceed 100 characters", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	return nil
}
