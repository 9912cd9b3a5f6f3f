package app

import (
	"database/sql"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/employee"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/payroll"
	"go-timeclock/internal/rbac"
	"go-timeclock/internal/report"
	"go-timeclock/internal/schedule"
	"go-timeclock/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg Config,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	resolver := schedule.NewResolver(scheduleRepo, cfg.ScheduleDefaults)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	scheduleService := schedule.NewService(db, scheduleRepo, resolver)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, resolver, outboxRepo, cfg.Timezone)
	reportService := report.NewService(attendanceRepo, employeeRepo, resolver, rdb, cfg.Timezone)
	payrollService := payroll.NewService(attendanceRepo, employeeRepo, resolver, cfg.Timezone)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	reportHandler := report.NewHandler(reportService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}
