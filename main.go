package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/config"
	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/router"
	"github.com/littlelemon/restaurant-api/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedAdmin(db)

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Menu{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Booking{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedAdmin creates the admin account from env on first start.
// Registration never grants roles, so without this there would be no
// way to reach the admin-only endpoints.
func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin user: %v", err)
	}
	utils.InfoLogger.Printf("Seeded admin user %s", username)
}
