package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// AdminHandler exposes the admin management endpoints.
type AdminHandler struct {
	svc domain.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc domain.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Create handles POST /admins.
func (h *AdminHandler) Create(c *gin.Context) {
	var req CreateAdminRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	admin, err := h.svc.CreateAdmin(c.Request.Context(), req.toInput())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, admin)
}

// Get handles GET /admins/:id.
func (h *AdminHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	admin, err := h.svc.GetAdmin(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, admin)
}

// List handles GET /admins with pagination, search, and filters.
func (h *AdminHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListAdmins(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Update handles PUT /admins/:id.
func (h *AdminHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAdminRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	admin, err := h.svc.UpdateAdmin(c.Request.Context(), id, req.toInput())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, admin)
}

// ToggleStatus handles PUT /admins/status/:id.
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	admin, err := h.svc.ToggleAdminStatus(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if admin.IsActive {
		pkg.Message(c, "admin activated")
		return
	}
	pkg.Message(c, "admin deactivated")
}

// Delete handles DELETE /admins/:id.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteAdmin(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Message(c, "admin deleted")
}

// parseID extracts the numeric :id path parameter. On failure it sends the
// error response itself and returns false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid id", err))
		return 0, false
	}
	return uint(id), true
}
