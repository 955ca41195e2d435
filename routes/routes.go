package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"nova/auth"
	"nova/cart"
	"nova/catalog"
	"nova/categories"
	"nova/middleware"
	"nova/orders"
	"nova/pricing"
	"nova/ratelim"
	"nova/reviews"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:productId", catalog.GetProduct)
	router.POST("/api/products", middleware.AdminOnly(catalog.CreateProduct))
	router.PUT("/api/products/:productId", middleware.AdminOnly(catalog.UpdateProduct))
	router.DELETE("/api/products/:productId", middleware.AdminOnly(catalog.DeleteProduct))
	router.POST("/api/products/:productId/image", middleware.AdminOnly(catalog.UploadProductImage))

	router.GET("/api/products-export", middleware.AdminOnly(catalog.ExportProducts))
	router.POST("/api/products-import", middleware.AdminOnly(catalog.ImportProducts))
}

func AddReviewsRoutes(router *httprouter.Router) {
	router.GET("/api/products/:productId/reviews", reviews.GetReviews)
	router.POST("/api/products/:productId/reviews", ratelim.RateLimit(reviews.AddReview))
}

func AddCategoryRoutes(router *httprouter.Router) {
	router.GET("/api/categories", categories.ListCategories)
	router.GET("/api/custom-categories", categories.ListCustomCategories)
	router.POST("/api/custom-categories", middleware.AdminOnly(categories.AddCustomCategory))
	router.DELETE("/api/custom-categories/:name", middleware.AdminOnly(categories.RemoveCustomCategory))
}

func AddPricingRoutes(router *httprouter.Router) {
	router.POST("/api/pricing/quote", pricing.QuoteHandler)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handlers) {
	router.GET("/api/cart/:cartId", h.GetCart)
	router.POST("/api/cart/:cartId/items", h.AddLine)
	router.PUT("/api/cart/:cartId/items/:productId", h.UpdateQuantity)
	router.DELETE("/api/cart/:cartId/items/:productId", h.RemoveLine)
	router.DELETE("/api/cart/:cartId", h.ClearCart)
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handlers) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.OptionalAuth(h.Submit)))
	router.GET("/api/orders", middleware.AdminOnly(h.GetOrders))
	router.GET("/api/my-orders", middleware.Authenticate(h.GetMyOrders))
	router.GET("/api/orders/:orderId", middleware.Authenticate(h.GetOrder))
	router.GET("/api/orders/:orderId/invoice", middleware.Authenticate(h.PrintInvoice))
	// static segment instead of /api/orders/live: httprouter cannot mix it
	// with the :orderId wildcard
	router.GET("/api/orders-live", h.LiveOrders)
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.GET("/api/auth/me", middleware.Authenticate(auth.Me))
	router.PUT("/api/auth/me", middleware.Authenticate(auth.UpdateMe))
}
