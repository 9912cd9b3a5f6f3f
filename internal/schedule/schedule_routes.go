package schedule

import (
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.GET("/:employee_id", middleware.RBACAuthorize(rbacService, "schedule", "read"), h.GetEffective)
		schedules.PUT("/:employee_id", middleware.RBACAuthorize(rbacService, "schedule", "write"), h.Upsert)
		schedules.DELETE("/:employee_id", middleware.RBACAuthorize(rbacService, "schedule", "write"), h.Delete)
	}
}
