package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/codedevify/shoe/controllers/admin"
	orderControllers "github.com/codedevify/shoe/controllers/order"
	productControllers "github.com/codedevify/shoe/controllers/product"
	"github.com/codedevify/shoe/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Everything but
// login requires a valid admin token.
func SetupAdminRoutes(r *gin.Engine, app *App) {
	r.POST("/admin/login", adminController.LoginHandler(app.DB))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAdminToken)
	{
		adminGroup.GET("/dashboard", adminController.DashboardHandler(app.DB, app.Config))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(app.DB))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(app.DB))
			productAdmin.GET("", productControllers.GetProducts(app.DB))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(app.DB))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(app.DB))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(app.Orders))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(app.Orders))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.POST("/:orderID/confirm", orderControllers.AdminConfirmHandler(app.Manager))
			orderAdmin.POST("/:orderID/cancel", orderControllers.AdminCancelHandler(app.Manager))
		}

		// ─────────── Configuration ───────────
		configAdmin := adminGroup.Group("/config")
		{
			configAdmin.POST("/payment", adminController.UpdatePaymentConfigHandler(app.Config))
			configAdmin.POST("/email", adminController.UpdateEmailConfigHandler(app.Config, app.Mail))
		}
	}
}
