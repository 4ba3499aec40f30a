package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Slug  string `json:"slug" binding:"required"`
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	category := models.Category{Slug: req.Slug, Title: req.Title}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("cat_id"))

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": category.ID})
}
