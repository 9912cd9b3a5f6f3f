package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timeclock/internal/attendance"
	attendanceerrors "go-timeclock/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn          func(ctx context.Context, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	clockOutFn         func(ctx context.Context, employeeID string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error)
	getAllFn           func(ctx context.Context, actorID string, canReadAll bool, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
	getStatusFn        func(ctx context.Context, id string) (attendance.StatusResponse, error)
	createCorrectionFn func(ctx context.Context, req attendance.CorrectionRequest) (attendance.AttendanceResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx, employeeID, req)
}
func (f *fakeService) ClockOut(ctx context.Context, employeeID string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return f.clockOutFn(ctx, employeeID, req)
}
func (f *fakeService) CreateCorrection(ctx context.Context, req attendance.CorrectionRequest) (attendance.AttendanceResponse, error) {
	return f.createCorrectionFn(ctx, req)
}
func (f *fakeService) UpdateCorrection(ctx context.Context, id string, req attendance.UpdateCorrectionRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}
func (f *fakeService) GetAll(ctx context.Context, actorID string, canReadAll bool, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, actorID, canReadAll, filter)
}
func (f *fakeService) GetStatus(ctx context.Context, id string) (attendance.StatusResponse, error) {
	return f.getStatusFn(ctx, id)
}
func (f *fakeService) Delete(ctx context.Context, id string) error { return nil }

func TestHandler_ClockIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, eid)
			return attendance.AttendanceResponse{ID: uuid.NewString(), EmployeeID: eid, Source: attendance.SourceManual}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Set("role", "EMPLOYEE")
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/clock-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestHandler_ClockIn_MissingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/clock-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ClockIn(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_ClockOut_ConflictMapsToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		clockOutFn: func(ctx context.Context, eid string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrNoOpenRecord
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/clock-out", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ClockOut(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestHandler_GetAll_RolePropagation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.NewString()

	var gotCanReadAll bool
	svc := &fakeService{
		getAllFn: func(ctx context.Context, actor string, canReadAll bool, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, actorID, actor)
			gotCanReadAll = canReadAll
			return nil, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", actorID)
	c.Set("role", "EMPLOYEE")
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances?start_date=2025-12-01", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gotCanReadAll)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("employee_id", uuid.NewString())
	c2.Set("role", "ADMIN")
	c2.Request = httptest.NewRequest(http.MethodGet, "/attendances", nil)
	h.GetAll(c2)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.True(t, gotCanReadAll)
}

func TestHandler_CreateCorrection_ValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("role", "ADMIN")
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/corrections", strings.NewReader(`{"employee_id":"not-a-uuid"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateCorrection(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
