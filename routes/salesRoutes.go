package routes

import (
	"goldenwine/middleware"
	"goldenwine/models"
	"goldenwine/ratelim"
	"goldenwine/sales"

	"github.com/julienschmidt/httprouter"
)

// AddSalesRoutes wires SalesService handlers to the router
func AddSalesRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, svc *sales.SalesService) {
	staff := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSale, models.RoleIPOS),
	)
	admin := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleAdmin),
	)

	router.POST("/api/sales", staff(svc.RecordSale))
	router.GET("/api/sales", staff(svc.ListSales))
	router.PUT("/api/sales/:id", staff(svc.EditSale))
	router.PUT("/api/sales/:id/approval", admin(svc.SetApproval))
	router.DELETE("/api/sales/:id", admin(svc.DeleteSale))
}
