package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/controllers"
	"github.com/littlelemon/restaurant-api/middlewares"
	"github.com/littlelemon/restaurant-api/models"
)

func setupMenuItemRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	r := gin.New()
	r.Use(authAs(userID, role))

	adminOnly := middlewares.RequireRoles(models.RoleAdmin)
	ctrl := controllers.NewMenuItemController(db)
	r.GET("/menu-items", ctrl.GetAllMenuItems)
	r.POST("/menu-items", adminOnly, ctrl.CreateMenuItem)
	r.GET("/menu-items/:item_id", ctrl.GetMenuItemByID)
	r.PUT("/menu-items/:item_id", adminOnly, ctrl.UpdateMenuItem)
	r.PATCH("/menu-items/:item_id", adminOnly, ctrl.PatchMenuItem)
	r.DELETE("/menu-items/:item_id", adminOnly, ctrl.DeleteMenuItem)
	return r
}

func TestMenuItemPriceRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	category := createCategory(t, db, "mains", "Mains")
	admin := createUser(t, db, "admin", models.RoleAdmin)
	r := setupMenuItemRouter(db, admin.ID, admin.Role)

	w := performJSON(t, r, http.MethodPost, "/menu-items", gin.H{
		"title":    "Greek Salad",
		"price":    "10.99",
		"featured": true,
		"category": category.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeData(t, w)
	itemID := int(created["id"].(float64))

	w = performJSON(t, r, http.MethodGet, fmt.Sprintf("/menu-items/%d", itemID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeData(t, w)
	requireMoney(t, "10.99", got["price"])
	assert.Equal(t, "Greek Salad", got["title"])
}

func TestMenuItemWritesRequireAdmin(t *testing.T) {
	db := setupTestDB(t)
	category := createCategory(t, db, "mains", "Mains")
	item := createMenuItem(t, db, "Bruschetta", "5.50", false, category.ID)
	customer := createUser(t, db, "alice", models.RoleCustomer)
	r := setupMenuItemRouter(db, customer.ID, customer.Role)

	w := performJSON(t, r, http.MethodPost, "/menu-items", gin.H{
		"title": "Nope", "price": "1.00", "category": category.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = performJSON(t, r, http.MethodDelete, fmt.Sprintf("/menu-items/%d", item.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Reads stay open to any authenticated user.
	w = performJSON(t, r, http.MethodGet, fmt.Sprintf("/menu-items/%d", item.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMenuItemListFilters(t *testing.T) {
	db := setupTestDB(t)
	category := createCategory(t, db, "mains", "Mains")
	createMenuItem(t, db, "Lemon Cake", "4.00", true, category.ID)
	createMenuItem(t, db, "Lemon Tea", "2.50", false, category.ID)
	createMenuItem(t, db, "Pasta", "12.00", true, category.ID)
	customer := createUser(t, db, "bob", models.RoleCustomer)
	r := setupMenuItemRouter(db, customer.ID, customer.Role)

	w := performJSON(t, r, http.MethodGet, "/menu-items?to_price=5.00", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.EqualValues(t, 2, data["total"])

	w = performJSON(t, r, http.MethodGet, "/menu-items?search=Lemon&featured=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	results := data["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "Lemon Cake", results[0].(map[string]interface{})["title"])

	w = performJSON(t, r, http.MethodGet, "/menu-items?ordering=-price", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results = decodeData(t, w)["results"].([]interface{})
	require.Len(t, results, 3)
	assert.Equal(t, "Pasta", results[0].(map[string]interface{})["title"])

	w = performJSON(t, r, http.MethodGet, "/menu-items?ordering=price&page=2&perpage=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.EqualValues(t, 3, data["total"])
	results = data["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "Pasta", results[0].(map[string]interface{})["title"])

	w = performJSON(t, r, http.MethodGet, "/menu-items?ordering=password", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuItemPatchKeepsOtherFields(t *testing.T) {
	db := setupTestDB(t)
	category := createCategory(t, db, "mains", "Mains")
	item := createMenuItem(t, db, "Soup", "3.25", true, category.ID)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	r := setupMenuItemRouter(db, admin.ID, admin.Role)

	w := performJSON(t, r, http.MethodPatch, fmt.Sprintf("/menu-items/%d", item.ID), gin.H{
		"price": "3.75",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.MenuItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, "Soup", reloaded.Title)
	assert.True(t, reloaded.Featured)
	requireMoney(t, "3.75", reloaded.Price.String())
}

func TestMenuItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	customer := createUser(t, db, "carol", models.RoleCustomer)
	r := setupMenuItemRouter(db, customer.ID, customer.Role)

	w := performJSON(t, r, http.MethodGet, "/menu-items/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
