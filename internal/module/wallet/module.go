package wallet

import "github.com/gin-gonic/gin"

// WalletModule implements the app.Module interface for wallet management.
type WalletModule struct {
	handler *WalletHandler
}

// NewModule creates a new WalletModule with the given handler.
// Panics if h is nil.
func NewModule(h *WalletHandler) *WalletModule {
	if h == nil {
		panic("wallet.NewModule: handler must not be nil")
	}
	return &WalletModule{handler: h}
}

// RegisterRoutes registers the wallet management API routes. All of them
// require authentication.
func (m *WalletModule) RegisterRoutes(_ *gin.RouterGroup, protected *gin.RouterGroup) {
	grp := protected.Group("/wallets")
	grp.POST("", m.handler.Create)
	grp.GET("", m.handler.List)
	grp.GET("/:id", m.handler.Get)
	grp.PUT("/status/:id", m.handler.ToggleStatus)
	grp.DELETE("/:id", m.handler.Delete)
}
