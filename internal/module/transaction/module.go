package transaction

import "github.com/gin-gonic/gin"

// TransactionModule implements the app.Module interface for transactions.
type TransactionModule struct {
	handler *TransactionHandler
}

// NewModule creates a new TransactionModule with the given handler.
// Panics if h is nil.
func NewModule(h *TransactionHandler) *TransactionModule {
	if h == nil {
		panic("transaction.NewModule: handler must not be nil")
	}
	return &TransactionModule{handler: h}
}

// RegisterRoutes registers the transaction API routes. All of them require
// authentication.
func (m *TransactionModule) RegisterRoutes(_ *gin.RouterGroup, protected *gin.RouterGroup) {
	grp := protected.Group("/transactions")
	grp.POST("", m.handler.Create)
	grp.GET("", m.handler.List)
	grp.GET("/:id", m.handler.Get)
	grp.PUT("/status/:id", m.handler.Settle)
	grp.DELETE("/:id", m.handler.Delete)
}
