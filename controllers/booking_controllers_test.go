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
	"github.com/littlelemon/restaurant-api/models"
)

func setupBookingRouter(db *gorm.DB, userID uint) *gin.Engine {
	r := gin.New()
	r.Use(authAs(userID, models.RoleCustomer))

	ctrl := controllers.NewBookingController(db)
	r.GET("/bookings", ctrl.GetAllBookings)
	r.POST("/bookings", ctrl.CreateBooking)
	r.GET("/bookings/:booking_id", ctrl.GetBookingByID)
	r.PUT("/bookings/:booking_id", ctrl.UpdateBooking)
	r.DELETE("/bookings/:booking_id", ctrl.DeleteBooking)
	return r
}

func TestBookingCRUD(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice", models.RoleCustomer)
	r := setupBookingRouter(db, user.ID)

	w := performJSON(t, r, http.MethodPost, "/bookings", gin.H{
		"name":         "Alice",
		"no_of_guests": 4,
		"booking_date": "2026-09-01T19:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	bookingID := int(data["id"].(float64))
	assert.NotEmpty(t, data["reference"])

	url := fmt.Sprintf("/bookings/%d", bookingID)

	w = performJSON(t, r, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice", decodeData(t, w)["name"])

	w = performJSON(t, r, http.MethodPut, url, gin.H{
		"name":         "Alice B",
		"no_of_guests": 2,
		"booking_date": "2026-09-02T20:00:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Booking
	require.NoError(t, db.First(&reloaded, bookingID).Error)
	assert.Equal(t, "Alice B", reloaded.Name)
	assert.Equal(t, 2, reloaded.NoOfGuests)

	w = performJSON(t, r, http.MethodDelete, url, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodGet, url, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "alice", models.RoleCustomer)
	r := setupBookingRouter(db, user.ID)

	w := performJSON(t, r, http.MethodPost, "/bookings", gin.H{
		"name": "No Guests",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Bookings are not scoped to their creator: any authenticated user may
// see and modify any reservation.
func TestBookingHasNoOwnershipScoping(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice", models.RoleCustomer)
	bob := createUser(t, db, "bob", models.RoleCustomer)

	aliceRouter := setupBookingRouter(db, alice.ID)
	w := performJSON(t, aliceRouter, http.MethodPost, "/bookings", gin.H{
		"name":         "Alice",
		"no_of_guests": 2,
		"booking_date": "2026-09-01T19:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int(decodeData(t, w)["id"].(float64))

	bobRouter := setupBookingRouter(db, bob.ID)
	w = performJSON(t, bobRouter, http.MethodDelete, fmt.Sprintf("/bookings/%d", bookingID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
