package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/codedevify/shoe/config"
	cartControllers "github.com/codedevify/shoe/controllers/cart"
	checkoutControllers "github.com/codedevify/shoe/controllers/checkout"
	orderControllers "github.com/codedevify/shoe/controllers/order"
	"github.com/codedevify/shoe/mailer"
	"github.com/codedevify/shoe/models"
	"github.com/codedevify/shoe/payment"
	"github.com/codedevify/shoe/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
		&models.PaymentConfig{},
		&models.EmailConfig{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	seedData(db)

	// Session carts live in redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr()})

	// Wire services
	cfg := config.NewStore(db)
	carts := cartControllers.NewStore(rdb)
	payments := payment.NewStripeClient(cfg)
	mail := mailer.NewSMTP(cfg)
	orders := orderControllers.NewGormRepository(db)
	manager := orderControllers.NewManager(orders, payments, mail)
	checkout := checkoutControllers.NewService(orders, payments, cfg, mail)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, &routes.App{
		DB:       db,
		Config:   cfg,
		Carts:    carts,
		Mail:     mail,
		Orders:   orders,
		Manager:  manager,
		Checkout: checkout,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// seedData inserts the shared admin credential and a demo catalog the
// first time the service boots against an empty database. The config
// singletons seed lazily on first access.
func seedData(db *gorm.DB) {
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		username := os.Getenv("ADMIN_USER")
		if username == "" {
			username = "admin"
		}
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "password"
		}
		if err := db.Create(&models.Admin{Username: username, Password: password}).Error; err != nil {
			log.Printf("❌ Admin seed failed: %v", err)
		} else {
			log.Printf("✅ Admin created: %s", username)
		}
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		products := []models.Product{
			{Name: "Nike Air Max", Description: "Comfortable running shoes", Price: decimal.NewFromInt(120), Image: "https://via.placeholder.com/300x200?text=Nike+Air+Max"},
			{Name: "Adidas Ultraboost", Description: "High performance", Price: decimal.NewFromInt(180), Image: "https://via.placeholder.com/300x200?text=Adidas+Ultraboost"},
			{Name: "Puma RS-X", Description: "Bold street style", Price: decimal.NewFromInt(110), Image: "https://via.placeholder.com/300x200?text=Puma+RS-X"},
			{Name: "Reebok Classic", Description: "Timeless design", Price: decimal.NewFromInt(80), Image: "https://via.placeholder.com/300x200?text=Reebok+Classic"},
			{Name: "Vans Old Skool", Description: "Skate culture icon", Price: decimal.NewFromInt(70), Image: "https://via.placeholder.com/300x200?text=Vans+Old+Skool"},
			{Name: "Converse Chuck 70", Description: "Vintage high-top", Price: decimal.NewFromInt(85), Image: "https://via.placeholder.com/300x200?text=Converse+Chuck+70"},
			{Name: "New Balance 550", Description: "Retro basketball", Price: decimal.NewFromInt(130), Image: "https://via.placeholder.com/300x200?text=New+Balance+550"},
			{Name: "Jordan 1 Low", Description: "Iconic style", Price: decimal.NewFromInt(150), Image: "https://via.placeholder.com/300x200?text=Jordan+1+Low"},
		}
		if err := db.Create(&products).Error; err != nil {
			log.Printf("❌ Product seed failed: %v", err)
		} else {
			log.Printf("✅ %d products seeded", len(products))
		}
	}
}
