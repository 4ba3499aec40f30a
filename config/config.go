package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER. Defaults to a local
// sqlite file so the API runs without any external service; set
// DB_DRIVER=mysql plus the DB_* variables for a real deployment.
func InitDB() (*gorm.DB, error) {
	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "127.0.0.1"),
			getEnv("DB_PORT", "3306"),
			os.Getenv("DB_NAME"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(getEnv("DB_PATH", "littlelemon.db")), &gorm.Config{})
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
