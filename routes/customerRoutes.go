package routes

import (
	"goldenwine/customers"
	"goldenwine/middleware"
	"goldenwine/models"
	"goldenwine/ratelim"

	"github.com/julienschmidt/httprouter"
)

// AddCustomerRoutes wires CustomerService handlers to the router
func AddCustomerRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, svc *customers.CustomerService) {
	staff := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSale, models.RoleIPOS),
	)

	router.GET("/api/customers", staff(svc.SearchCustomers))
	router.GET("/api/customers/:id", staff(svc.GetCustomer))
	router.POST("/api/customers", staff(svc.CreateCustomer))
	router.PUT("/api/customers/:id", staff(svc.UpdateCustomer))
}
