package wallet

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// CreateWalletRequest is the request body for opening a wallet.
type CreateWalletRequest struct {
	UserID   uint   `json:"userId" binding:"required,min=1"`
	Currency string `json:"currency" binding:"required,min=3,max=10"`
}

// WalletHandler exposes the wallet management endpoints.
type WalletHandler struct {
	svc domain.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc domain.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// Create handles POST /wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req CreateWalletRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	wallet, err := h.svc.CreateWallet(c.Request.Context(), req.UserID, req.Currency)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, wallet)
}

// Get handles GET /wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	wallet, err := h.svc.GetWallet(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, wallet)
}

// List handles GET /wallets with pagination, search, and filters.
func (h *WalletHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListWallets(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// ToggleStatus handles PUT /wallets/status/:id.
func (h *WalletHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	wallet, err := h.svc.ToggleWalletStatus(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if wallet.IsActive {
		pkg.Message(c, "wallet activated")
		return
	}
	pkg.Message(c, "wallet deactivated")
}

// Delete handles DELETE /wallets/:id.
func (h *WalletHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteWallet(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Message(c, "wallet deleted")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid id", err))
		return 0, false
	}
	return uint(id), true
}
