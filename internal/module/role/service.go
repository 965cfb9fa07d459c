package role

import (
	"context"
	"strings"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// roleService implements domain.RoleService.
type roleService struct {
	repo domain.RoleRepository
}

// NewRoleService creates a new RoleService with the given repository.
func NewRoleService(repo domain.RoleRepository) domain.RoleService {
	return &roleService{repo: repo}
}

// CreateRole validates the name, derives the slug, resolves the granted
// permissions, and persists the new role.
func (s *roleService) CreateRole(ctx context.Context, name, description string, permissionIDs []uint) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "role name is required", nil)
	}

	perms, err := s.resolvePermissions(ctx, permissionIDs)
	if err != nil {
		return nil, err
	}

	role := &domain.Role{
		Name:        name,
		Slug:        slugify(name),
		Description: strings.TrimSpace(description),
		IsActive:    true,
		Permissions: perms,
	}

	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// GetRole retrieves a role by ID.
func (s *roleService) GetRole(ctx context.Context, id uint) (*domain.Role, error) {
	return s.repo.GetByID(ctx, id)
}

// ListRoles returns a paginated list of roles.
func (s *roleService) ListRoles(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Role], error) {
	return s.repo.List(ctx, req)
}

// UpdateRole renames a role and replaces its granted permissions. The slug
// stays stable so existing tokens and seeds keep resolving.
func (s *roleService) UpdateRole(ctx context.Context, id uint, name, description string, permissionIDs []uint) (*domain.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "role name is required", nil)
	}

	role.Name = name
	role.Description = strings.TrimSpace(description)
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}

	if permissionIDs != nil {
		perms, err := s.resolvePermissions(ctx, permissionIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplacePermissions(ctx, role, perms); err != nil {
			return nil, err
		}
	}

	return role, nil
}

// ToggleRoleStatus flips the active flag and returns the updated role.
// Admins keep their assignment to a deactivated role, but it grants nothing
// while inactive.
func (s *roleService) ToggleRoleStatus(ctx context.Context, id uint) (*domain.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role.IsActive = !role.IsActive
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a role by ID.
func (s *roleService) DeleteRole(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListPermissions returns the full permission catalog.
func (s *roleService) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	return s.repo.ListPermissions(ctx)
}

// resolvePermissions loads the permissions for the given IDs and rejects
// requests referencing unknown ones.
func (s *roleService) resolvePermissions(ctx context.Context, ids []uint) ([]domain.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	perms, err := s.repo.FindPermissions(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(ids) {
		return nil, domain.NewAppError(domain.CodeValidation, "unknown permission", nil)
	}
	return perms, nil
}

// slugify turns a role name into its URL-safe slug: lowercase, with runs of
// non-alphanumeric characters collapsed into single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
