package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	employeeerrors "go-timeclock/internal/employee/errors"
)

type fakeRepo struct {
	created  *Employee
	byID     map[string]*Employee
	active   []Employee
	createFn func(ctx context.Context, e *Employee) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	f.created = e
	return nil
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) { return f.active, nil }
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]Employee, error) {
	return f.active, nil
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return nil }
func (f *fakeRepo) Delete(ctx context.Context, id string) error   { return nil }

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

func TestCreate_GeneratesEmployeeNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, &fakeCounter{next: 41}, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Siti Rahma",
		Email:    "siti@example.com",
		Position: "Backend Engineer",
		HireDate: "2025-01-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "2025-01-15", resp.HireDate)
	require.NotNil(t, repo.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_KeepsExplicitEmployeeNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, &fakeCounter{}, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:       "Budi Santoso",
		Email:          "budi@example.com",
		HireDate:       "2025-02-01",
		EmployeeNumber: "EMP-CUSTOM",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP-CUSTOM", resp.EmployeeNumber)
}

func TestCreate_InvalidHireDate(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, nil, zap.NewNop())

	_, err = svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Budi Santoso",
		Email:    "budi@example.com",
		HireDate: "15-01-2025",
	})
	assert.Error(t, err)
}

func TestCreate_InvalidatesOptionsCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectDel(EmployeeOptionsKey).SetVal(1)

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, rdb, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err = svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Siti Rahma",
		Email:    "siti@example.com",
		HireDate: "2025-01-15",
	})
	require.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetOptions_CacheHit(t *testing.T) {
	cached := []EmployeeResponse{{ID: uuid.NewString(), FullName: "Siti Rahma"}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(EmployeeOptionsKey).SetVal(string(payload))

	svc := NewService(nil, &fakeRepo{}, &fakeCounter{}, rdb, zap.NewNop())

	resp, err := svc.GetOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cached, resp)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetOptions_CacheMissStoresResult(t *testing.T) {
	active := []Employee{{
		ID:             uuid.New(),
		EmployeeNumber: "EMP-000001",
		FullName:       "Siti Rahma",
		Email:          "siti@example.com",
		IsActive:       true,
		HireDate:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}}
	expected := mapToListResponse(active)
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(EmployeeOptionsKey).RedisNil()
	redisMock.ExpectSet(EmployeeOptionsKey, payload, 1*time.Hour).SetVal("OK")

	svc := NewService(nil, &fakeRepo{active: active}, &fakeCounter{}, rdb, zap.NewNop())

	resp, err := svc.GetOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, expected, resp)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestGetByID_InvalidUUID(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, &fakeCounter{}, nil, zap.NewNop())

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, &fakeCounter{}, nil, zap.NewNop())

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestUpdate_TogglesActiveFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	repo := &fakeRepo{byID: map[string]*Employee{
		id.String(): {
			ID:       id,
			FullName: "Siti Rahma",
			Email:    "siti@example.com",
			IsActive: true,
		},
	}}
	svc := NewService(db, repo, &fakeCounter{}, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	inactive := false
	resp, err := svc.Update(context.Background(), id.String(), UpdateEmployeeRequest{
		FullName: "Siti Rahma",
		Email:    "siti@example.com",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}
