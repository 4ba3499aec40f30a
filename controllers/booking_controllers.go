package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/utils"
)

// BookingController is plain CRUD over reservations. Any
// authenticated user may read or modify any booking.
type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

func (bc *BookingController) GetAllBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := bc.DB.Order("booking_date asc").Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

type bookingRequest struct {
	Name        string    `json:"name" binding:"required"`
	NoOfGuests  int       `json:"no_of_guests" binding:"required,min=1"`
	BookingDate time.Time `json:"booking_date" binding:"required"`
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	booking := models.Booking{
		Reference:   uuid.NewString(),
		Name:        req.Name,
		NoOfGuests:  req.NoOfGuests,
		BookingDate: req.BookingDate,
	}
	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s created for %s", booking.Reference, booking.Name)
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("booking_id"))

	var booking models.Booking
	if err := bc.DB.First(&booking, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("booking_id"))

	var booking models.Booking
	if err := bc.DB.First(&booking, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	booking.Name = req.Name
	booking.NoOfGuests = req.NoOfGuests
	booking.BookingDate = req.BookingDate

	if err := bc.DB.Save(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("booking_id"))

	var booking models.Booking
	if err := bc.DB.First(&booking, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := bc.DB.Delete(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking deleted", gin.H{"id": booking.ID})
}
