package product

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/pkg"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	SKU      string `json:"sku" binding:"required,min=2,max=64"`
	Category string `json:"category" binding:"omitempty,max=100"`
	Price    int64  `json:"price" binding:"min=0"`
}

// UpdateProductRequest is the request body for updating a product. The SKU
// cannot be changed.
type UpdateProductRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Category string `json:"category" binding:"omitempty,max=100"`
	Price    int64  `json:"price" binding:"min=0"`
}

// ProductHandler exposes the product catalog endpoints.
type ProductHandler struct {
	svc domain.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc domain.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	p, err := h.svc.CreateProduct(c.Request.Context(), req.Name, req.SKU, req.Category, req.Price)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, p)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, p)
}

// List handles GET /products with pagination, search, and filters.
func (h *ProductHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListProducts(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	p, err := h.svc.UpdateProduct(c.Request.Context(), id, req.Name, req.Category, req.Price)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, p)
}

// ToggleStatus handles PUT /products/status/:id.
func (h *ProductHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.svc.ToggleProductStatus(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if p.IsActive {
		pkg.Message(c, "product activated")
		return
	}
	pkg.Message(c, "product deactivated")
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Message(c, "product deleted")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid id", err))
		return 0, false
	}
	return uint(id), true
}
