package routes

import (
	"krishi/advisory"
	"krishi/auth"
	"krishi/cart"
	"krishi/crops"
	"krishi/middleware"
	"krishi/models"
	"krishi/orders"
	"krishi/payments"
	"krishi/products"
	"krishi/ratelim"
	"krishi/stores"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/users/register", rl.Limit(auth.Register))
	router.POST("/api/v1/users/login-user", rl.Limit(auth.Login))
	router.GET("/api/v1/users/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/v1/users/logout-all", middleware.Authenticate(auth.LogoutAll))
	router.POST("/api/v1/users/refresh-token", rl.Limit(auth.RefreshToken))
	router.PUT("/api/v1/users/change-password", middleware.Authenticate(auth.ChangePassword))
	router.GET("/api/v1/users/get-user", middleware.Authenticate(auth.GetCurrentUser))
	router.PUT("/api/v1/users/update-profile", middleware.Authenticate(auth.UpdateAccountDetails))
	router.GET("/api/v1/users/get-all-users",
		middleware.Authenticate(middleware.RequireRoles(models.RoleAdmin)(auth.GetAllUsers)))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/v1/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/v1/cart/add", middleware.Authenticate(cart.AddToCart))
	router.PUT("/api/v1/cart/update/:productId", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/v1/cart/remove/:productId", middleware.Authenticate(cart.RemoveFromCart))
	router.DELETE("/api/v1/cart/clear", middleware.Authenticate(cart.ClearCart))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/v1/product/get-all-product", middleware.Authenticate(products.GetAllProducts))
	router.GET("/api/v1/product/get-product/:id", middleware.Authenticate(products.GetProductByID))
	router.GET("/api/v1/product/search", middleware.OptionalAuth(products.SearchProducts))
	router.POST("/api/v1/product/create-product",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(products.CreateProduct)))
	router.PUT("/api/v1/product/update-product/:id",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(products.UpdateProduct)))
	router.DELETE("/api/v1/product/delete-product/:id",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(products.DeleteProduct)))
	router.PUT("/api/v1/product/stock-status/:id",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(products.ChangeStockStatus)))
	router.PUT("/api/v1/product/update-quantity/:id",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(products.UpdateQuantity)))
}

func AddStoreRoutes(router *httprouter.Router) {
	router.GET("/api/v1/store/get-all-store", middleware.Authenticate(stores.GetAllStores))
	router.GET("/api/v1/store/get-store/:id", middleware.Authenticate(stores.GetStoreByID))
	router.POST("/api/v1/store/create-store",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(stores.CreateStore)))
	router.PUT("/api/v1/store/update-store/:id",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(stores.UpdateStore)))
	router.DELETE("/api/v1/store/delete-store/:id",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(stores.DeleteStore)))
}

func AddOrderDetailsRoutes(router *httprouter.Router) {
	router.POST("/api/v1/order-details/create-order-details", middleware.Authenticate(orders.CreateOrderDetails))
	router.GET("/api/v1/order-details", middleware.Authenticate(orders.GetAllOrderDetails))
	router.GET("/api/v1/order-details/:orderId", middleware.Authenticate(orders.GetOrderDetailsByID))
	router.PUT("/api/v1/order-details/update-order-status/:orderId",
		middleware.Authenticate(middleware.RequireRoles(models.RoleStore, models.RoleAdmin)(orders.UpdateOrderStatus)))
	router.DELETE("/api/v1/order-details/delete-order-details/:orderId",
		middleware.Authenticate(middleware.RequireRoles(models.RoleAdmin)(orders.DeleteOrderDetails)))
}

func AddPaymentRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *payments.PaymentService) {
	router.GET("/api/v1/order/razorpay/getid", svc.GetRazorpayKey)
	router.POST("/api/v1/order/razorpay/order", rl.Limit(middleware.Authenticate(svc.CreateOrder)))
	router.POST("/api/v1/order/razorpay/verify", rl.Limit(middleware.Authenticate(svc.VerifyPayment)))
	router.GET("/api/v1/order/razorpay/receipt/:id", middleware.Authenticate(svc.DownloadReceipt))
	router.POST("/api/v1/order/cash-order", rl.Limit(middleware.Authenticate(svc.CreateCODPayment)))

	router.POST("/api/v1/payment/razorpay/subscribe",
		rl.Limit(middleware.Authenticate(middleware.RequireRoles(models.RoleStore)(svc.BuySubscription))))
	router.POST("/api/v1/payment/razorpay/verify",
		rl.Limit(middleware.Authenticate(middleware.RequireRoles(models.RoleStore)(svc.VerifySubscription))))
}

func AddCropRoutes(router *httprouter.Router) {
	router.POST("/api/v1/crops/add-crop", middleware.Authenticate(crops.AddCrop))
	router.GET("/api/v1/crops/get-crops", middleware.Authenticate(crops.GetCrops))
	router.PUT("/api/v1/crops/update-crop/:cropId", middleware.Authenticate(crops.UpdateCrop))
	router.DELETE("/api/v1/crops/delete-crop/:cropId", middleware.Authenticate(crops.DeleteCrop))
}

func AddAdvisoryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *advisory.Service) {
	router.POST("/api/v1/ai/location-insights", rl.Limit(middleware.Authenticate(svc.LocationInsights)))
	router.POST("/api/v1/ai/crop-forecast", rl.Limit(middleware.Authenticate(svc.CropForecast)))
	router.POST("/api/v1/ai/market-analysis", rl.Limit(middleware.Authenticate(svc.MarketAnalysis)))
	router.POST("/api/v1/ai/pest-advisory", rl.Limit(middleware.Authenticate(svc.PestAdvisory)))
}
