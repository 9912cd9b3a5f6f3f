package report

import (
	"net/http"
	"strconv"

	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// resolveEmployeeID membatasi non-admin ke dirinya sendiri. Admin boleh
// menyebut employee_id siapa saja.
func resolveEmployeeID(c *gin.Context, requested string) (string, bool) {
	role, _ := c.Get("role")
	if role == "ADMIN" {
		return requested, true
	}

	own, _ := c.Get("employee_id")
	ownID, _ := own.(string)
	if requested != "" && requested != ownID {
		return "", false
	}
	return ownID, true
}

func (h *Handler) Daily(c *gin.Context) {
	employeeID, ok := resolveEmployeeID(c, c.Query("employee_id"))
	if !ok {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "cannot view another employee's report", nil)
		return
	}

	resp, err := h.service.Daily(c.Request.Context(), employeeID, c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Weekly(c *gin.Context) {
	employeeID, ok := resolveEmployeeID(c, c.Query("employee_id"))
	if !ok {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "cannot view another employee's report", nil)
		return
	}

	resp, err := h.service.Weekly(c.Request.Context(), employeeID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Monthly(c *gin.Context) {
	employeeID, ok := resolveEmployeeID(c, c.Query("employee_id"))
	if !ok {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "cannot view another employee's report", nil)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		writeServiceError(c, apperror.InvalidField("year"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		writeServiceError(c, apperror.InvalidField("month"))
		return
	}

	resp, err := h.service.Monthly(c.Request.Context(), employeeID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	resp, err := h.service.Summary(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Compliance(c *gin.Context) {
	employeeID, ok := resolveEmployeeID(c, c.Query("employee_id"))
	if !ok {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "cannot view another employee's report", nil)
		return
	}

	resp, err := h.service.Compliance(c.Request.Context(), employeeID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Exceptions(c *gin.Context) {
	resp, err := h.service.Exceptions(c.Request.Context(), c.Query("start_date"), c.Query("end_date"), c.Query("employee_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
