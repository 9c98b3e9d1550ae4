package response

import (
	"encoding/json"
	"net/http"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/gorags/sewa-lapangan/pkg/logger"
)

// ErrorResponse is the JSON body of errors outside the booking form flow.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// JSON writes data with statusCode.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	JSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeRateLimit     = "RATE_LIMIT_EXCEEDED"
	CodeInternalError = "INTERNAL_ERROR"
)

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}

// OK writes a successful booking result.
func OK(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, domain.SewaResponse{Success: true, Message: message})
}

// Fail writes a failed booking result; the body keeps the {success, message}
// shape the booking form reads.
func Fail(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, domain.SewaResponse{Message: message})
}
