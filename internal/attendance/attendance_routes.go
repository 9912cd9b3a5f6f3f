package attendance

import (
	"time"

	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, redisClient *redis.Client) {
	// Clock in/out dibatasi per karyawan, satu burst kecil cukup
	clockLimiter := middleware.RateLimitByEmployee(rate.Every(2*time.Second), 5)

	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/clock-in",
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			clockLimiter,
			middleware.Idempotency(redisClient),
			h.ClockIn,
		)
		attendances.POST("/clock-out",
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			clockLimiter,
			middleware.Idempotency(redisClient),
			h.ClockOut,
		)
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/:id/status", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetStatus)

		// Jalur koreksi manual, khusus admin
		attendances.POST("/corrections", middleware.RBACAuthorize(rbacService, "attendance", "correct"), h.CreateCorrection)
		attendances.PUT("/:id", middleware.RBACAuthorize(rbacService, "attendance", "correct"), h.UpdateCorrection)
		attendances.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attendance", "correct"), h.Delete)
	}
}
