package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/codedevify/shoe/controllers/cart"
	checkoutControllers "github.com/codedevify/shoe/controllers/checkout"
	orderControllers "github.com/codedevify/shoe/controllers/order"
	productControllers "github.com/codedevify/shoe/controllers/product"
	"github.com/codedevify/shoe/middleware"
)

// SetupStoreRoutes registers the visitor-facing endpoints. Everything
// here runs behind the session middleware so a cart is always
// addressable.
func SetupStoreRoutes(r *gin.Engine, app *App) {
	store := r.Group("/")
	store.Use(middleware.EnsureSession())
	{
		// ──────────────── Catalog ────────────────
		store.GET("/", productControllers.GetProducts(app.DB))
		store.GET("/products/:id", productControllers.GetProductByID(app.DB))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := store.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(app.Carts))
			cartGroup.POST("/add/:id", cartControllers.AddToCart(app.DB, app.Carts))
			cartGroup.POST("/update", cartControllers.UpdateCartItem(app.Carts))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(app.Carts))
			cartGroup.DELETE("", cartControllers.ClearCart(app.Carts))
		}

		// ──────────────── Checkout & Order Links ────────────────
		store.POST("/checkout", checkoutControllers.CheckoutHandler(app.Checkout, app.Carts))
		store.GET("/success", orderControllers.SuccessCallbackHandler(app.Manager, app.Carts))
		store.GET("/orders/:orderID/confirm", orderControllers.ConfirmLinkHandler(app.Manager))
		store.GET("/orders/:orderID/cancel", orderControllers.CancelLinkHandler(app.Manager))
	}
}
