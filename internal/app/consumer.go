package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/employee"
	"go-timeclock/internal/report"
	"go-timeclock/internal/schedule"
	"go-timeclock/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer mendengarkan event clock-out dan memanaskan cache report
// harian, supaya report yang dibuka setelah clock-out langsung kena
// cache.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	resolver := schedule.NewResolver(scheduleRepo, cfg.ScheduleDefaults)
	reportService := report.NewService(attendanceRepo, employeeRepo, resolver, redisClient, cfg.Timezone)

	consumer := report.NewDailyCacheConsumer(
		kafkaBroker,
		"go-timeclock-daily-report",
		reportService,
	)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
