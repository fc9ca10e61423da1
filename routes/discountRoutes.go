package routes

import (
	"goldenwine/discounts"
	"goldenwine/middleware"
	"goldenwine/models"
	"goldenwine/ratelim"

	"github.com/julienschmidt/httprouter"
)

// AddDiscountRoutes wires DiscountService handlers to the router
func AddDiscountRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, svc *discounts.DiscountService) {
	staff := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleAdmin, models.RoleSale, models.RoleIPOS),
	)

	router.POST("/api/discounts/validate", staff(svc.ValidateDiscount))
}
