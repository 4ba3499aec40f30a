package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/utils"
)

// MenuController serves the legacy flat menu (title, price,
// inventory). Reads are public, writes are admin-gated in the router.
type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

type menuRequest struct {
	Title     string          `json:"title" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Inventory int             `json:"inventory" binding:"min=0"`
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	menu := models.Menu{Title: req.Title, Price: req.Price, Inventory: req.Inventory}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	menu.Title = req.Title
	menu.Price = req.Price
	menu.Inventory = req.Inventory

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"id": menu.ID})
}
