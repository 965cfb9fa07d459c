package role

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// RoleRequest is the request body for creating or updating a role.
type RoleRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Description   string `json:"description" binding:"omitempty,max=255"`
	PermissionIDs []uint `json:"permissionIds" binding:"omitempty,dive,min=1"`
}

// RoleHandler exposes the role management endpoints.
type RoleHandler struct {
	svc domain.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(svc domain.RoleService) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// Create handles POST /roles.
func (h *RoleHandler) Create(c *gin.Context) {
	var req RoleRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	role, err := h.svc.CreateRole(c.Request.Context(), req.Name, req.Description, req.PermissionIDs)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, role)
}

// Get handles GET /roles/:id.
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	role, err := h.svc.GetRole(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, role)
}

// List handles GET /roles with pagination, search, and filters.
func (h *RoleHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListRoles(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Update handles PUT /roles/:id.
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RoleRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	role, err := h.svc.UpdateRole(c.Request.Context(), id, req.Name, req.Description, req.PermissionIDs)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, role)
}

// ToggleStatus handles PUT /roles/status/:id.
func (h *RoleHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	role, err := h.svc.ToggleRoleStatus(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if role.IsActive {
		pkg.Message(c, "role activated")
		return
	}
	pkg.Message(c, "role deactivated")
}

// Delete handles DELETE /roles/:id.
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteRole(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Message(c, "role deleted")
}

// ListPermissions handles GET /roles/permissions.
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	perms, err := h.svc.ListPermissions(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, perms)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid id", err))
		return 0, false
	}
	return uint(id), true
}
