package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/utils"
)

// OrderController owns the cart -> order workflow and the role-gated
// order transitions.
type OrderController struct {
	DB *gorm.DB

	// Per-user checkout locks. Two concurrent checkouts by the same
	// user must not read the same cart lines into two orders.
	checkoutLocks sync.Map
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func (oc *OrderController) userLock(userID uint) *sync.Mutex {
	lock, _ := oc.checkoutLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

var orderOrdering = map[string]string{
	"id":     "id",
	"date":   "date",
	"total":  "total",
	"status": "status",
}

// Checkout converts the caller's cart into an order plus order items.
// Order creation, item creation and cart clearing run in a single
// transaction; if any step fails nothing is persisted and the cart is
// left untouched. An empty cart still yields a zero-total order.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID := c.GetUint("user_id")

	lock := oc.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var lines []models.CartItem
	if err := oc.DB.Where("user_id = ?", userID).Find(&lines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price)
	}

	order := models.Order{
		UserID:         userID,
		DeliveryCrewID: nil,
		Status:         false,
		Total:          total,
		Date:           time.Now(),
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if len(lines) > 0 {
			items := make([]models.OrderItem, 0, len(lines))
			for _, line := range lines {
				items = append(items, models.OrderItem{
					OrderID:    order.ID,
					MenuItemID: line.MenuItemID,
					Quantity:   line.Quantity,
					UnitPrice:  line.UnitPrice,
					Price:      line.Price,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("Checkout failed for user %d: %v", userID, err)
		code := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			code = http.StatusConflict
		}
		utils.RespondError(c, code, errors.New("checkout failed, cart unchanged"))
		return
	}

	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d placed by user %d (total=%s)", order.ID, userID, order.Total)
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// ListOrders returns orders with nested items in one shape for every
// role: managers see all orders, delivery crew the ones assigned to
// them, everyone else their own.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	q := oc.DB.Model(&models.Order{}).
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("DeliveryCrew")

	switch role {
	case models.RoleManager, models.RoleAdmin:
		// unrestricted
	case models.RoleDeliveryCrew:
		q = q.Where("delivery_crew_id = ?", userID)
	default:
		q = q.Where("user_id = ?", userID)
	}

	if toPrice := c.Query("to_price"); toPrice != "" {
		max, err := decimal.NewFromString(toPrice)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid to_price"))
			return
		}
		q = q.Where("total <= ?", max)
	}

	if search := c.Query("search"); search != "" {
		delivered, err := strconv.ParseBool(search)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid search value, expected a delivered flag"))
			return
		}
		q = q.Where("status = ?", delivered)
	}

	order, err := buildOrdering(c.Query("ordering"), orderOrdering)
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
	var orders []models.Order
	if err := page.Scope(q).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", utils.PagedData{
		Results: orders,
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
	})
}

// GetOrderByID returns the order only to its owner.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID := c.GetUint("user_id")
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// ReplaceOrder is the manager-only full update.
func (oc *OrderController) ReplaceOrder(c *gin.Context) {
	role := c.GetString("role")
	if role != models.RoleManager && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))
	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// A full replace needs the full payload; only the crew assignment
	// may be omitted (meaning unassigned).
	var req struct {
		DeliveryCrewID *uint            `json:"delivery_crew_id"`
		Status         *bool            `json:"status" binding:"required"`
		Total          *decimal.Decimal `json:"total" binding:"required"`
		Date           *time.Time       `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if req.DeliveryCrewID != nil {
		if err := oc.validateDeliveryCrew(c, *req.DeliveryCrewID); err != nil {
			return
		}
	}

	order.DeliveryCrewID = req.DeliveryCrewID
	order.Status = *req.Status
	order.Total = *req.Total
	order.Date = *req.Date

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// PatchOrder applies partial updates. Managers may change any field;
// delivery crew may flip only the status flag, and only on orders
// assigned to them. Everyone else is forbidden.
func (oc *OrderController) PatchOrder(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	id, _ := strconv.Atoi(c.Param("order_id"))
	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	switch role {
	case models.RoleManager, models.RoleAdmin:
		if err := oc.applyManagerPatch(c, &order, payload); err != nil {
			return
		}
	case models.RoleDeliveryCrew:
		if order.DeliveryCrewID == nil || *order.DeliveryCrewID != userID {
			utils.RespondError(c, http.StatusForbidden, errors.New("order is not assigned to you"))
			return
		}
		for key := range payload {
			if key != "status" {
				utils.RespondError(c, http.StatusBadRequest, errors.New("delivery crew may only update status"))
				return
			}
		}
		raw, ok := payload["status"]
		if !ok {
			utils.RespondError(c, http.StatusBadRequest, errors.New("status is required"))
			return
		}
		var delivered bool
		if err := json.Unmarshal(raw, &delivered); err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("status must be a boolean"))
			return
		}
		order.Status = delivered
	default:
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder is a manager-only hard delete; items go with the order.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	role := c.GetString("role")
	if role != models.RoleManager && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))
	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}

func (oc *OrderController) applyManagerPatch(c *gin.Context, order *models.Order, payload map[string]json.RawMessage) error {
	for key, raw := range payload {
		switch key {
		case "status":
			var delivered bool
			if err := json.Unmarshal(raw, &delivered); err != nil {
				utils.RespondError(c, http.StatusBadRequest, errors.New("status must be a boolean"))
				return err
			}
			order.Status = delivered
		case "delivery_crew_id":
			var crewID *uint
			if err := json.Unmarshal(raw, &crewID); err != nil {
				utils.RespondError(c, http.StatusBadRequest, errors.New("delivery_crew_id must be a user id or null"))
				return err
			}
			if crewID != nil {
				if err := oc.validateDeliveryCrew(c, *crewID); err != nil {
					return err
				}
			}
			order.DeliveryCrewID = crewID
		case "total":
			var total decimal.Decimal
			if err := json.Unmarshal(raw, &total); err != nil {
				utils.RespondError(c, http.StatusBadRequest, errors.New("invalid total"))
				return err
			}
			order.Total = total
		case "date":
			var date time.Time
			if err := json.Unmarshal(raw, &date); err != nil {
				utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date"))
				return err
			}
			order.Date = date
		default:
			err := errors.New("unknown field: " + key)
			utils.RespondError(c, http.StatusBadRequest, err)
			return err
		}
	}
	return nil
}

// validateDeliveryCrew responds with the appropriate error when the
// given user cannot be assigned as delivery crew.
func (oc *OrderController) validateDeliveryCrew(c *gin.Context, crewID uint) error {
	var crew models.User
	if err := oc.DB.First(&crew, crewID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("delivery crew user not found"))
		return err
	}
	if crew.Role != models.RoleDeliveryCrew {
		err := errors.New("user is not delivery crew")
		utils.RespondError(c, http.StatusBadRequest, err)
		return err
	}
	return nil
}
