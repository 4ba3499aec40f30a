package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Menu{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Booking{},
	)
	require.NoError(t, err)
	return db
}

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
}

// authAs injects identity the way AuthMiddleware does, skipping token
// plumbing in controller tests.
func authAs(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, slug, title string) models.Category {
	t.Helper()
	category := models.Category{Slug: slug, Title: title}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createMenuItem(t *testing.T, db *gorm.DB, title, price string, featured bool, categoryID uint) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		Featured:   featured,
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// performJSON runs a request with an optional JSON body and returns
// the recorder.
func performJSON(t *testing.T, r *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

// requireMoney compares a JSON money field (string or number) against
// the expected decimal value, ignoring representation.
func requireMoney(t *testing.T, want string, got interface{}) {
	t.Helper()
	var d decimal.Decimal
	switch v := got.(type) {
	case string:
		d = decimal.RequireFromString(v)
	case float64:
		d = decimal.NewFromFloat(v)
	default:
		t.Fatalf("unexpected money type %T", got)
	}
	require.True(t, decimal.RequireFromString(want).Equal(d), "want %s, got %s", want, d)
}
