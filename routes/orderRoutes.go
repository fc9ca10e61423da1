package routes

import (
	"goldenwine/middleware"
	"goldenwine/models"
	"goldenwine/orders"
	"goldenwine/ratelim"

	"github.com/julienschmidt/httprouter"
)

// AddOrderRoutes wires OrderService handlers to the router
func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, svc *orders.OrderService) {
	staff := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSale, models.RoleIPOS),
	)

	router.POST("/api/orders", staff(svc.CreateOrder))
	router.GET("/api/orders", staff(svc.ListOrders))
	router.GET("/api/orders/:id", staff(svc.GetOrder))
	router.PUT("/api/orders/:id", staff(svc.UpdateOrder))
	router.POST("/api/orders/:id/send-invoice", staff(svc.SendInvoice))
	router.GET("/api/orders/:id/qr", staff(svc.OrderQR))
	router.GET("/api/orders/:id/qr.png", staff(svc.OrderQRPNG))
	router.GET("/api/orders/:id/invoice.pdf", staff(svc.OrderInvoicePDF))
}
