package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/pkg/logger"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool               `json:"success"`
	Data    interface{}        `json:"data,omitempty"`
	Message string             `json:"message,omitempty"`
	Error   *internal.AppError `json:"error,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess wraps data in the success envelope.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	h.WriteJSON(w, status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// WriteAppError serializes a domain error into the envelope.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, appErr *internal.AppError) {
	h.Logger.Error("http error",
		"status", appErr.StatusCode,
		"code", appErr.Code,
		"message", appErr.Message)
	h.WriteJSON(w, appErr.StatusCode, Envelope{
		Success: false,
		Error:   appErr,
	})
}

// WriteError writes a generic error response with the given status.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.WriteJSON(w, status, Envelope{
		Success: false,
		Error: &internal.AppError{
			Type:       internal.ErrorTypeInternal,
			Code:       internal.ErrorCode(http.StatusText(status)),
			Message:    message,
			StatusCode: status,
		},
	})
}

// HandleServiceError is the single boundary that maps service failures to
// responses. Domain errors pass through unmodified; anything else becomes a
// generic 500 so internal detail never reaches the client.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteAppError(w, appErr)
		return
	}

	h.Logger.Error("unclassified service error", "error", err)
	h.WriteAppError(w, internal.NewInternalError("internal server error", nil))
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
