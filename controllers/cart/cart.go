package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/codedevify/shoe/middleware"
	"github.com/codedevify/shoe/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// POST /cart/add/:id
// Adds one unit of the product, snapshotting name and price.
func AddToCart(db *gorm.DB, carts *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		sid := middleware.SessionID(c)
		cart, err := carts.Get(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		cart.Add(product)
		if err := carts.Save(c.Request.Context(), sid, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// POST /cart/update
// Sets the quantity of an existing line.
func UpdateCartItem(carts *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		sid := middleware.SessionID(c)
		cart, err := carts.Get(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if !cart.SetQuantity(input.ProductID, input.Quantity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		if err := carts.Save(c.Request.Context(), sid, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /cart/:product_id
func DeleteCartItem(carts *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		sid := middleware.SessionID(c)
		cart, err := carts.Get(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if !cart.Remove(uint(productID)) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		if err := carts.Save(c.Request.Context(), sid, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart
func ClearCart(carts *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.SessionID(c)
		if err := carts.Clear(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /cart
func GetCart(carts *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.SessionID(c)
		cart, err := carts.Get(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"lines": cart.Lines,
			"total": cart.Total(),
		})
	}
}
