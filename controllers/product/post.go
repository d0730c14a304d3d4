package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/codedevify/shoe/models"
)

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// CreateProduct creates a new catalog product. The image field carries
// a URL or storage key; upload itself lives outside this service.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Image:       input.Image,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
