package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/utils"
)

type MenuItemController struct {
	DB *gorm.DB
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	return &MenuItemController{DB: db}
}

// menuItemOrdering maps the ordering query fields onto columns.
var menuItemOrdering = map[string]string{
	"id":    "id",
	"title": "title",
	"price": "price",
}

// GetAllMenuItems lists menu items with to_price / featured / search /
// ordering filters and pagination.
func (mc *MenuItemController) GetAllMenuItems(c *gin.Context) {
	q := mc.DB.Model(&models.MenuItem{}).Preload("Category")

	if toPrice := c.Query("to_price"); toPrice != "" {
		max, err := decimal.NewFromString(toPrice)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid to_price"))
			return
		}
		q = q.Where("price <= ?", max)
	}

	if featured := c.Query("featured"); featured != "" {
		want, err := strconv.ParseBool(featured)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid featured"))
			return
		}
		q = q.Where("featured = ?", want)
	}

	if search := c.Query("search"); search != "" {
		q = q.Where("title LIKE ?", "%"+search+"%")
	}

	order, err := buildOrdering(c.Query("ordering"), menuItemOrdering)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if order != "" {
		q = q.Order(order)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	page := utils.PageFromQuery(c)
	var items []models.MenuItem
	if err := page.Scope(q).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", utils.PagedData{
		Results: items,
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
	})
}

type menuItemRequest struct {
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Featured   bool            `json:"featured"`
	CategoryID uint            `json:"category" binding:"required"`
}

func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var category models.Category
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	item := models.MenuItem{
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.CategoryID,
		Category:   category,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.Preload("Category").First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// UpdateMenuItem replaces all writable fields.
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var category models.Category
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	item.Title = req.Title
	item.Price = req.Price
	item.Featured = req.Featured
	item.CategoryID = req.CategoryID
	item.Category = category

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// PatchMenuItem updates only the provided fields.
func (mc *MenuItemController) PatchMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Title      *string          `json:"title"`
		Price      *decimal.Decimal `json:"price"`
		Featured   *bool            `json:"featured"`
		CategoryID *uint            `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := mc.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
			return
		}
		item.CategoryID = *req.CategoryID
		item.Category = category
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}

// buildOrdering turns a comma-separated ordering parameter (leading
// "-" for descending) into an ORDER BY clause, rejecting fields
// outside the whitelist.
func buildOrdering(param string, allowed map[string]string) (string, error) {
	if param == "" {
		return "", nil
	}

	var clauses []string
	for _, field := range strings.Split(param, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		desc := strings.HasPrefix(field, "-")
		name := strings.TrimPrefix(field, "-")

		column, ok := allowed[name]
		if !ok {
			return "", errors.New("invalid ordering field: " + name)
		}
		if desc {
			column += " desc"
		}
		clauses = append(clauses, column)
	}
	return strings.Join(clauses, ", "), nil
}
