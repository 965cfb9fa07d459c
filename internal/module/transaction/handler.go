package transaction

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// CreateTransactionRequest is the request body for recording a transaction.
type CreateTransactionRequest struct {
	WalletID uint   `json:"walletId" binding:"required,min=1"`
	Amount   int64  `json:"amount" binding:"required,min=1"`
	Kind     string `json:"kind" binding:"required,oneof=credit debit"`
	Note     string `json:"note" binding:"omitempty,max=255"`
}

// TransactionHandler exposes the transaction endpoints.
type TransactionHandler struct {
	svc domain.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc domain.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	tx, err := h.svc.CreateTransaction(c.Request.Context(), req.WalletID, req.Amount, req.Kind, req.Note)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, tx)
}

// Get handles GET /transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tx, err := h.svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, tx)
}

// List handles GET /transactions with pagination, search, and filters.
func (h *TransactionHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListTransactions(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Settle handles PUT /transactions/status/:id. Settling applies the pending
// amount to the wallet and reports the outcome.
func (h *TransactionHandler) Settle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tx, err := h.svc.SettleTransaction(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if tx.Status == domain.TxCompleted {
		pkg.Message(c, "transaction completed")
		return
	}
	pkg.Message(c, "transaction failed: insufficient funds")
}

// Delete handles DELETE /transactions/:id.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteTransaction(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Message(c, "transaction deleted")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid id", err))
		return 0, false
	}
	return uint(id), true
}
