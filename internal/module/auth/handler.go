package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/middleware"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// AuthHandler handles REST API requests for authentication.
type AuthHandler struct {
	svc Service
}

// NewHandler creates a new AuthHandler with the given service.
func NewHandler(svc Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Unix(),
		Admin:     newProfileResponse(result.Admin),
	})
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	admin, err := h.svc.Register(c.Request.Context(), RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Success: true,
		Data:    newProfileResponse(admin),
	})
}

// Me handles GET /api/v1/auth/me. It is the session verification endpoint:
// a stale token answers 401 here, which clients translate into a forced
// sign-out.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetAuthClaims(c)
	if claims == nil {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}

	admin, err := h.svc.Profile(c.Request.Context(), claims.AdminID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, newProfileResponse(admin))
}
