package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/codedevify/shoe/config"
	cartControllers "github.com/codedevify/shoe/controllers/cart"
	checkoutControllers "github.com/codedevify/shoe/controllers/checkout"
	orderControllers "github.com/codedevify/shoe/controllers/order"
	"github.com/codedevify/shoe/mailer"
)

// App bundles the wired services the route groups hang off.
type App struct {
	DB       *gorm.DB
	Config   *config.Store
	Carts    *cartControllers.Store
	Mail     mailer.Service
	Orders   orderControllers.Repository
	Manager  *orderControllers.Manager
	Checkout *checkoutControllers.Service
}

// SetupRoutes is the single entry-point that wires up the store and
// admin route groups.
func SetupRoutes(r *gin.Engine, app *App) {
	SetupStoreRoutes(r, app)

	SetupAdminRoutes(r, app)
}
