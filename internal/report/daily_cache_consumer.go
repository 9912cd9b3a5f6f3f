package report

import (
	"context"
	"encoding/json"
	"time"

	"go-timeclock/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DailyCacheConsumer mendengarkan event clock-out dan memanaskan cache
// report harian karyawan yang bersangkutan. Report harian paling sering
// dibuka tepat setelah clock-out, jadi warming di sini membuat request
// pertama sudah kena cache.
type DailyCacheConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewDailyCacheConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *DailyCacheConsumer {
	l := zap.L().Named("report.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.consumer")
	}

	return &DailyCacheConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.AttendanceTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *DailyCacheConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume attendance event failed", zap.Error(err))
				continue
			}

			var event events.AttendanceClockedOutEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode attendance event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid attendance event failed", zap.Error(commitErr))
				}
				continue
			}

			if err := c.handle(ctx, event); err != nil {
				c.logger.Error("warm daily report cache failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("work_date", event.WorkDate),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit attendance event failed", zap.Error(err))
				continue
			}

			c.logger.Info("daily report cache warmed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("work_date", event.WorkDate),
			)
		}
	}()
}

func (c *DailyCacheConsumer) handle(ctx context.Context, event events.AttendanceClockedOutEvent) error {
	_, err := c.service.RefreshDaily(ctx, event.EmployeeID, event.WorkDate)
	return err
}

func (c *DailyCacheConsumer) Close() error {
	return c.reader.Close()
}
