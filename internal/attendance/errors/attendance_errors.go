package attendanceerrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Employee already has an open attendance record",
		http.StatusConflict,
	)
	ErrNoOpenRecord = apperror.New(
		apperror.CodeNotFound,
		"No open attendance record to clock out",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrClockOutBeforeClockIn = apperror.New(
		apperror.CodeComputation,
		"clock_out must not be before clock_in",
		http.StatusUnprocessableEntity,
	)
)
