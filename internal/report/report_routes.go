package report

import (
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/daily", middleware.RBACAuthorize(rbacService, "report", "read"), h.Daily)
		reports.GET("/weekly", middleware.RBACAuthorize(rbacService, "report", "read"), h.Weekly)
		reports.GET("/monthly", middleware.RBACAuthorize(rbacService, "report", "read"), h.Monthly)
		reports.GET("/compliance", middleware.RBACAuthorize(rbacService, "report", "read"), h.Compliance)

		// Laporan lintas karyawan khusus admin
		reports.GET("/summary", middleware.RBACAuthorize(rbacService, "report", "read_all"), h.Summary)
		reports.GET("/exceptions", middleware.RBACAuthorize(rbacService, "report", "read_all"), h.Exceptions)
	}
}
