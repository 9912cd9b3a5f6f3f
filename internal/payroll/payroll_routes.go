package payroll

import (
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, redisClient *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("/compute",
			middleware.RBACAuthorize(rbacService, "payroll", "compute"),
			middleware.Idempotency(redisClient),
			h.Compute,
		)
	}
}
