package schedule

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type upsertFakeRepo struct {
	fakeRepo
	created *EmployeeSchedule
	updated *EmployeeSchedule
}

func (f *upsertFakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *upsertFakeRepo) Create(ctx context.Context, s *EmployeeSchedule) error {
	f.created = s
	return nil
}
func (f *upsertFakeRepo) Update(ctx context.Context, s *EmployeeSchedule) error {
	f.updated = s
	return nil
}

func TestService_UpsertCreatesWhenAbsent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &upsertFakeRepo{}
	repo.findByEmployeeFn = func(ctx context.Context, employeeID string) (*EmployeeSchedule, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, NewResolver(repo, testDefaults))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upsert(context.Background(), uuid.New().String(), UpsertScheduleRequest{
		StartTime:     "08:00",
		EndTime:       "16:30",
		ExpectedHours: 8.5,
	})
	assert.NoError(t, err)
	assert.NotNil(t, repo.created)
	assert.Nil(t, repo.updated)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, 8.5, resp.ExpectedHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpsertUpdatesInPlace(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	existing := &EmployeeSchedule{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		StartTime:     "09:00",
		EndTime:       "17:00",
		ExpectedHours: 8.0,
	}

	repo := &upsertFakeRepo{}
	repo.findByEmployeeFn = func(ctx context.Context, id string) (*EmployeeSchedule, error) {
		return existing, nil
	}

	svc := NewService(db, repo, NewResolver(repo, testDefaults))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upsert(context.Background(), employeeID.String(), UpsertScheduleRequest{
		StartTime:     "10:00",
		EndTime:       "18:00",
		ExpectedHours: 8.0,
	})
	assert.NoError(t, err)
	assert.Nil(t, repo.created)
	assert.NotNil(t, repo.updated)
	assert.Equal(t, existing.ID, repo.updated.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpsertRejectsBadEmployeeID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &upsertFakeRepo{}
	svc := NewService(db, repo, NewResolver(repo, testDefaults))

	_, err := svc.Upsert(context.Background(), "not-a-uuid", UpsertScheduleRequest{
		StartTime:     "09:00",
		EndTime:       "17:00",
		ExpectedHours: 8,
	})
	assert.Error(t, err)
}
