package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-timeclock/internal/attendance/errors"
	"go-timeclock/internal/events"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/schedule"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	SourceManual = "MANUAL"
	SourceQR     = "QR"

	maxNotesLen = 500
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	CreateCorrection(ctx context.Context, req CorrectionRequest) (AttendanceResponse, error)
	UpdateCorrection(ctx context.Context, id string, req UpdateCorrectionRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool, filter ListFilter) ([]AttendanceResponse, error)
	GetStatus(ctx context.Context, id string) (StatusResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver *schedule.Resolver
	outbox   kafka.OutboxRepository
	loc      *time.Location
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver *schedule.Resolver, loc *time.Location, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, resolver, nil, loc, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	resolver *schedule.Resolver,
	outboxRepo kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		resolver: resolver,
		outbox:   outboxRepo,
		loc:      loc,
		logger:   l,
	}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("employee_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Invariant jalur clock-in: maksimal satu record terbuka per karyawan.
	// Check-then-act di dalam tx; partial unique index jadi jaring terakhir
	// kalau dua request masuk bersamaan.
	existing, err := qtx.FindOpenByEmployee(ctx, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("clock in open-record lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		s.logger.Warn("clock in rejected, open record exists",
			zap.String("employee_id", employeeID),
			zap.String("open_record_id", existing.ID.String()),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	source := strings.ToUpper(strings.TrimSpace(req.Source))
	if source == "" {
		source = SourceManual
	}

	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		ClockIn:    time.Now().In(s.loc),
		Source:     source,
		Notes:      sanitizeNotes(req.Notes),
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("clock in persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("clock in commit failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("clock in success",
		zap.String("employee_id", employeeID),
		zap.String("attendance_id", row.ID.String()),
		zap.String("source", source),
	)
	return s.mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoOpenRecord
		}
		s.logger.Error("clock out open-record lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	now := time.Now().In(s.loc)
	if now.Before(row.ClockIn) {
		// Koreksi manual dengan clock-in di masa depan bisa memicu ini
		return AttendanceResponse{}, attendanceerrors.ErrClockOutBeforeClockIn
	}

	hours := Round2(now.Sub(row.ClockIn).Hours())
	row.ClockOut = &now
	row.HoursWorked = &hours
	if req.Notes != nil {
		row.Notes = sanitizeNotes(req.Notes)
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("clock out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if s.outbox != nil {
		event := events.AttendanceClockedOutEvent{
			EventType:    "attendance_clocked_out",
			RequestID:    rid,
			AttendanceID: row.ID.String(),
			EmployeeID:   employeeID,
			WorkDate:     row.ClockIn.In(s.loc).Format("2006-01-02"),
			HoursWorked:  hours,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal clocked_out event failed", zap.Error(err))
			return AttendanceResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attendance",
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.AttendanceTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("clock out outbox persist failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock out success",
		zap.String("employee_id", employeeID),
		zap.String("attendance_id", row.ID.String()),
		zap.Float64("hours_worked", hours),
	)
	return s.mapToResponse(*row), nil
}

// CreateCorrection adalah jalur admin: timestamp bebas, tanpa pengecekan
// record terbuka. Urutan clock tetap divalidasi.
func (s *service) CreateCorrection(ctx context.Context, req CorrectionRequest) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("employee_id")
	}

	clockIn, clockOut, hours, err := s.parseCorrectionTimes(req.ClockIn, req.ClockOut)
	if err != nil {
		return AttendanceResponse{}, err
	}

	source := strings.ToUpper(strings.TrimSpace(req.Source))
	if source == "" {
		source = SourceManual
	}

	row := &Attendance{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		ClockIn:     clockIn,
		ClockOut:    clockOut,
		HoursWorked: hours,
		Source:      source,
		Notes:       sanitizeNotes(req.Notes),
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create correction persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create correction success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("attendance_id", row.ID.String()),
	)
	return s.mapToResponse(*row), nil
}

func (s *service) UpdateCorrection(ctx context.Context, id string, req UpdateCorrectionRequest) (AttendanceResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	clockIn, clockOut, hours, err := s.parseCorrectionTimes(req.ClockIn, req.ClockOut)
	if err != nil {
		return AttendanceResponse{}, err
	}

	row.ClockIn = clockIn
	row.ClockOut = clockOut
	row.HoursWorked = hours
	if req.Notes != nil {
		row.Notes = sanitizeNotes(req.Notes)
	}

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("update correction persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update correction success", zap.String("attendance_id", id))
	return s.mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool, filter ListFilter) ([]AttendanceResponse, error) {
	employeeID := filter.EmployeeID
	if !canReadAll {
		if _, err := uuid.Parse(actorID); err != nil {
			return nil, apperror.New(apperror.CodeInvalidInput, "invalid actor id", 400)
		}
		employeeID = actorID
	}

	var (
		rows []Attendance
		err  error
	)

	switch {
	case filter.StartDate != "" || filter.EndDate != "":
		from, to, rangeErr := s.parseDateRange(filter.StartDate, filter.EndDate)
		if rangeErr != nil {
			return nil, rangeErr
		}
		if employeeID != "" {
			rows, err = s.repo.FindByEmployeeAndRange(ctx, employeeID, from, to)
		} else {
			rows, err = s.repo.FindAllInRange(ctx, from, to)
		}
	case employeeID != "":
		// Rentang luas: semua record karyawan
		rows, err = s.repo.FindByEmployeeAndRange(ctx, employeeID, time.Time{}, time.Now().In(s.loc).AddDate(1, 0, 0))
	default:
		rows, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = s.mapToResponse(r)
	}
	return res, nil
}

// GetStatus mengembalikan record plus klasifikasi late/undertime/overtime
// terhadap jadwal efektif karyawan.
func (s *service) GetStatus(ctx context.Context, id string) (StatusResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StatusResponse{}, mapRepositoryError(err)
	}

	sched, err := s.resolver.Resolve(ctx, row.EmployeeID.String())
	if err != nil {
		return StatusResponse{}, err
	}

	annotated, err := Annotate(*row, sched, s.loc)
	if err != nil {
		return StatusResponse{}, err
	}

	return StatusResponse{
		AttendanceResponse: s.mapToResponse(annotated.Record),
		Status:             annotated.Status,
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete attendance failed", zap.String("attendance_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete attendance success", zap.String("attendance_id", id))
	return nil
}

func (s *service) parseCorrectionTimes(clockInStr string, clockOutStr *string) (time.Time, *time.Time, *float64, error) {
	clockIn, err := time.ParseInLocation(TimestampLayout, clockInStr, s.loc)
	if err != nil {
		return time.Time{}, nil, nil, apperror.InvalidField("clock_in")
	}

	if clockOutStr == nil {
		return clockIn, nil, nil, nil
	}

	clockOut, err := time.ParseInLocation(TimestampLayout, *clockOutStr, s.loc)
	if err != nil {
		return time.Time{}, nil, nil, apperror.InvalidField("clock_out")
	}
	if clockOut.Before(clockIn) {
		return time.Time{}, nil, nil, attendanceerrors.ErrClockOutBeforeClockIn
	}

	hours := Round2(clockOut.Sub(clockIn).Hours())
	return clockIn, &clockOut, &hours, nil
}

// parseDateRange menerima tanggal kalender inklusif dan mengubahnya ke
// [from, to) pada timezone deployment.
func (s *service) parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("start_date")
	}
	from, err := time.ParseInLocation("2006-01-02", startDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("start_date")
	}

	to := from.AddDate(0, 0, 1)
	if endDate != "" {
		end, err := time.ParseInLocation("2006-01-02", endDate, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidField("end_date")
		}
		to = end.AddDate(0, 0, 1)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperror.New(apperror.CodeInvalidInput, "end_date is before start_date", 400)
	}
	return from, to, nil
}

func (s *service) mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.ID.String(),
		EmployeeID:  a.EmployeeID.String(),
		ClockIn:     a.ClockIn.In(s.loc).Format(TimestampLayout),
		HoursWorked: a.HoursWorked,
		Notes:       a.Notes,
		Source:      a.Source,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.ClockOut != nil {
		v := a.ClockOut.In(s.loc).Format(TimestampLayout)
		resp.ClockOut = &v
	}
	return resp
}

func sanitizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if len(trimmed) > maxNotesLen {
		trimmed = trimmed[:maxNotesLen]
	}
	return &trimmed
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_open" {
			return attendanceerrors.ErrAlreadyClockedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_open") {
		return attendanceerrors.ErrAlreadyClockedIn
	}

	return err
}
