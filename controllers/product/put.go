package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/codedevify/shoe/models"
)

type ProductUpdateInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
}

// UpdateProduct updates an existing product by ID. Absent fields keep
// their current value; product identity never changes.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
				return
			}
			product.Price = *input.Price
		}
		if input.Image != nil {
			product.Image = *input.Image
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
