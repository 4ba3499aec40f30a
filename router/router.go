package router

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/controllers"
	"github.com/littlelemon/restaurant-api/middlewares"
	"github.com/littlelemon/restaurant-api/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Must be attached before any route is registered; gin freezes a
	// route's handler chain at registration time.
	r.Use(globalRateLimiter().RateLimit())

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	menuItemCtrl := controllers.NewMenuItemController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	groupCtrl := controllers.NewGroupController(db)
	bookingCtrl := controllers.NewBookingController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Legacy menu browse stays public.
	r.GET("/menu", menuCtrl.GetAllMenus)
	r.GET("/menu/:menu_id", menuCtrl.GetMenuByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	adminOnly := middlewares.RequireRoles(models.RoleAdmin)

	auth.GET("/profile", userCtrl.GetProfile)

	// MENU ITEMS (reads for everyone, writes admin only)
	auth.GET("/menu-items", menuItemCtrl.GetAllMenuItems)
	auth.POST("/menu-items", adminOnly, menuItemCtrl.CreateMenuItem)
	auth.GET("/menu-items/:item_id", menuItemCtrl.GetMenuItemByID)
	auth.PUT("/menu-items/:item_id", adminOnly, menuItemCtrl.UpdateMenuItem)
	auth.PATCH("/menu-items/:item_id", adminOnly, menuItemCtrl.PatchMenuItem)
	auth.DELETE("/menu-items/:item_id", adminOnly, menuItemCtrl.DeleteMenuItem)

	// CATEGORIES
	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.POST("/categories", adminOnly, categoryCtrl.CreateCategory)
	auth.DELETE("/categories/:cat_id", adminOnly, categoryCtrl.DeleteCategory)

	// LEGACY MENU writes
	auth.POST("/menu", adminOnly, menuCtrl.CreateMenu)
	auth.PUT("/menu/:menu_id", adminOnly, menuCtrl.UpdateMenu)
	auth.PATCH("/menu/:menu_id", adminOnly, menuCtrl.UpdateMenu)
	auth.DELETE("/menu/:menu_id", adminOnly, menuCtrl.DeleteMenu)

	// CART
	auth.GET("/cart/menu-items", cartCtrl.GetCart)
	auth.POST("/cart/menu-items", cartCtrl.AddToCart)
	auth.DELETE("/cart/menu-items", cartCtrl.ClearCart)

	// ORDERS (role checks live in the controller, they depend on
	// ownership and crew assignment)
	auth.GET("/orders", orderCtrl.ListOrders)
	auth.POST("/orders", orderCtrl.Checkout)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PUT("/orders/:order_id", orderCtrl.ReplaceOrder)
	auth.PATCH("/orders/:order_id", orderCtrl.PatchOrder)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// GROUPS
	auth.GET("/groups/manager/users", middlewares.RequireRoles(models.RoleManager, models.RoleAdmin), groupCtrl.ListManagers)
	auth.POST("/groups/manager/users", adminOnly, groupCtrl.PromoteToManager)
	auth.DELETE("/groups/manager/users/:user_id", adminOnly, groupCtrl.DemoteManager)
	auth.GET("/groups/delivery-crew/users", adminOnly, groupCtrl.ListDeliveryCrew)
	auth.POST("/groups/delivery-crew/users", adminOnly, groupCtrl.AddDeliveryCrew)
	auth.DELETE("/groups/delivery-crew/users/:user_id", adminOnly, groupCtrl.RemoveDeliveryCrew)

	// BOOKINGS
	auth.GET("/bookings", bookingCtrl.GetAllBookings)
	auth.POST("/bookings", bookingCtrl.CreateBooking)
	auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	auth.PUT("/bookings/:booking_id", bookingCtrl.UpdateBooking)
	auth.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)

	return r
}

// globalRateLimiter builds the per-IP limiter, RATE_LIMIT requests per
// second (default 50).
func globalRateLimiter() *middlewares.RateLimiter {
	limit := 50
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return middlewares.NewRateLimiter(limit, 1)
}
