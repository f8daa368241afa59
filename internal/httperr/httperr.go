package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

var statusByCode = map[string]int{
	CodeAppointmentNotFound: http.StatusNotFound,
	CodePatientNotFound:     http.StatusNotFound,
	CodeDentistNotFound:     http.StatusNotFound,
	CodeReminderNotFound:    http.StatusNotFound,
	CodeContactNotFound:     http.StatusNotFound,
	CodeRecordNotFound:      http.StatusNotFound,

	CodeTimeConflict: http.StatusConflict,
	CodeSlotLocked:   http.StatusConflict,

	CodeInvalidTransition:    http.StatusBadRequest,
	CodeOutsideBusinessHours: http.StatusBadRequest,
	CodeNotADentist:          http.StatusBadRequest,
	CodeCannotCancel:         http.StatusBadRequest,
	CodeInvalidDuration:      http.StatusBadRequest,
	CodeInvalidAvailability:  http.StatusBadRequest,
	CodeTimeInPast:           http.StatusBadRequest,
	CodeAlreadySent:          http.StatusBadRequest,

	CodeNotAuthorized: http.StatusForbidden,
}

// Respond writes a business error with its mapped status, or a generic
// 500 for anything unrecognized.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := statusByCode[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		Write(c, status, be.Code, be.Message)
		return
	}

	Internal(c, "internal_error", "Unexpected error.")
}
