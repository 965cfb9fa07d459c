package verification

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// SubmitVerificationRequest is the request body for submitting a KYC document.
type SubmitVerificationRequest struct {
	UserID       uint   `json:"userId" binding:"required,min=1"`
	DocumentType string `json:"documentType" binding:"required,max=50"`
	FileName     string `json:"fileName" binding:"required,max=255"`
	URL          string `json:"url" binding:"required,url,max=512"`
	Size         int64  `json:"size" binding:"omitempty,min=0"`
}

// VerificationHandler exposes the KYC verification endpoints.
type VerificationHandler struct {
	svc domain.VerificationService
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(svc domain.VerificationService) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

// Submit handles POST /verifications.
func (h *VerificationHandler) Submit(c *gin.Context) {
	var req SubmitVerificationRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	v, err := h.svc.SubmitVerification(c.Request.Context(), req.UserID, req.DocumentType, req.FileName, req.URL, req.Size)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, v)
}

// Get handles GET /verifications/:id.
func (h *VerificationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	v, err := h.svc.GetVerification(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, v)
}

// List handles GET /verifications with pagination, search, and filters.
func (h *VerificationHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListVerifications(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// ToggleStatus handles PUT /verifications/status/:id.
func (h *VerificationHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	v, err := h.svc.ToggleVerificationStatus(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if v.Status == domain.VerificationApproved {
		pkg.Message(c, "verification approved")
		return
	}
	pkg.Message(c, "verification moved back to pending")
}

// Reject handles PUT /verifications/reject/:id.
func (h *VerificationHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.svc.RejectVerification(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Message(c, "verification rejected")
}

// Delete handles DELETE /verifications/:id.
func (h *VerificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteVerification(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Message(c, "verification deleted")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid id", err))
		return 0, false
	}
	return uint(id), true
}
