package response

import (
	"encoding/json"
	"net/http"

	"github.com/lobbykit/frontdesk/pkg/logger"
)

// ErrorResponse is the JSON error envelope. Code is stable so the front
// end can branch on the failure mode; MissingFields is populated for
// validation failures only.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Code          string   `json:"code,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "NOT_FOUND"
	CodeRateLimit        = "RATE_LIMIT_EXCEEDED"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeStoreQuery       = "STORE_QUERY_ERROR"
	CodeStoreWrite       = "STORE_WRITE_ERROR"
	CodeCancelled        = "CANCELLED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	writeErrorResponse(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// ValidationFailed reports which required fields were missing.
func ValidationFailed(w http.ResponseWriter, missingFields []string) {
	writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
		Error:         "Missing required fields",
		Code:          CodeInvalidInput,
		MissingFields: missingFields,
	})
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}
