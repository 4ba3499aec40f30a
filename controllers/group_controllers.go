package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/utils"
)

// GroupController manages manager and delivery-crew membership. Roles
// live in a single column, so granting one role removes the other.
type GroupController struct {
	DB *gorm.DB
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db}
}

func (gc *GroupController) ListManagers(c *gin.Context) {
	gc.listByRole(c, models.RoleManager, "Managers")
}

func (gc *GroupController) ListDeliveryCrew(c *gin.Context) {
	gc.listByRole(c, models.RoleDeliveryCrew, "Delivery crew")
}

func (gc *GroupController) listByRole(c *gin.Context, role, label string) {
	var users []models.User
	if err := gc.DB.Where("role = ?", role).Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, label, users)
}

func (gc *GroupController) PromoteToManager(c *gin.Context) {
	gc.assignRole(c, models.RoleManager, "User promoted to manager")
}

func (gc *GroupController) AddDeliveryCrew(c *gin.Context) {
	gc.assignRole(c, models.RoleDeliveryCrew, "User added to delivery crew")
}

// assignRole resolves the username from the payload and sets the role.
// Missing username -> 400, unknown username -> 404.
func (gc *GroupController) assignRole(c *gin.Context, role, message string) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var user models.User
	if err := gc.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	if user.Role == models.RoleAdmin {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot change the role of an admin"))
		return
	}

	user.Role = role
	if err := gc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %s role set to %s", user.Username, role)
	utils.RespondJSON(c, http.StatusOK, message, user)
}

func (gc *GroupController) DemoteManager(c *gin.Context) {
	gc.revokeRole(c, models.RoleManager, "User removed from managers")
}

func (gc *GroupController) RemoveDeliveryCrew(c *gin.Context) {
	gc.revokeRole(c, models.RoleDeliveryCrew, "User removed from delivery crew")
}

// revokeRole demotes the user back to customer. 404 when the user does
// not exist or is not in the group.
func (gc *GroupController) revokeRole(c *gin.Context, role, message string) {
	id, _ := strconv.Atoi(c.Param("user_id"))

	var user models.User
	if err := gc.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	if user.Role != role {
		utils.RespondError(c, http.StatusNotFound, errors.New("user is not in this group"))
		return
	}

	user.Role = models.RoleCustomer
	if err := gc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, message, user)
}
