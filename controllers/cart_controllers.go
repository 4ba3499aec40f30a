package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/utils"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// GetCart returns the caller's cart lines. No cross-user visibility.
func (cc *CartController) GetCart(c *gin.Context) {
	userID := c.GetUint("user_id")

	var items []models.CartItem
	if err := cc.DB.Preload("MenuItem").Preload("MenuItem.Category").
		Where("user_id = ?", userID).
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart items", items)
}

// AddToCart snapshots the menu item's current price into the line.
// Adding an item that is already in the cart merges into the existing
// line; the unit price snapshot taken at first insertion wins.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		MenuItemID uint `json:"menuitem_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var menuItem models.MenuItem
	if err := cc.DB.First(&menuItem, req.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var line models.CartItem
	err := cc.DB.Where("user_id = ? AND menu_item_id = ?", userID, req.MenuItemID).First(&line).Error
	switch {
	case err == nil:
		line.Quantity += req.Quantity
		line.Price = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		if err := cc.DB.Save(&line).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{
			UserID:     userID,
			MenuItemID: menuItem.ID,
			Quantity:   req.Quantity,
			UnitPrice:  menuItem.Price,
			Price:      menuItem.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		}
		if err := cc.DB.Create(&line).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	line.MenuItem = menuItem
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", line)
}

// ClearCart deletes all of the caller's cart lines. Idempotent: an
// empty cart is still a success.
func (cc *CartController) ClearCart(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := cc.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
