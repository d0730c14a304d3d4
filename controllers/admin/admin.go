package adminController

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/codedevify/shoe/config"
	"github.com/codedevify/shoe/mailer"
	"github.com/codedevify/shoe/models"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /admin/login
// Single shared credential; a valid login gets a short-lived token for
// the back-office routes.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var admin models.Admin
		err := db.Where("username = ? AND password = ?", req.Username, req.Password).First(&admin).Error
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login"})
			return
		}

		token, err := issueAdminToken(admin.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func issueAdminToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// GET /admin/dashboard
// Aggregate view: orders, products, both config singletons.
func DashboardHandler(db *gorm.DB, cfg *config.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		paymentCfg, err := cfg.Payment()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment config"})
			return
		}
		emailCfg, err := cfg.Email()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch email config"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":         orders,
			"products":       products,
			"payment_config": paymentCfg,
			"email_config":   emailCfg,
		})
	}
}

type PaymentConfigRequest struct {
	PublishableKey string `json:"publishable_key" binding:"required"`
	SecretKey      string `json:"secret_key" binding:"required"`
}

// POST /admin/config/payment
func UpdatePaymentConfigHandler(cfg *config.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentConfigRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := cfg.SavePayment(req.PublishableKey, req.SecretKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment config"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment config updated"})
	}
}

type EmailConfigRequest struct {
	User        string `json:"user" binding:"required"`
	Pass        string `json:"pass" binding:"required"`
	SellerEmail string `json:"seller_email" binding:"required"`
}

// POST /admin/config/email
// Saving new credentials invalidates the notifier's cached transport
// so the edit applies without a restart.
func UpdateEmailConfigHandler(cfg *config.Store, mail mailer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailConfigRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := cfg.SaveEmail(req.User, req.Pass, req.SellerEmail); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update email config"})
			return
		}
		mail.Reconfigure()
		log.Printf("✅ Email config updated, transport refreshed for %s", req.User)
		c.JSON(http.StatusOK, gin.H{"message": "Email config updated"})
	}
}
