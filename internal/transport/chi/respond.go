package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/logger"
)

// ErrorCode is the machine-readable error code of an error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeValidationFailed  ErrorCode = "validation_failed"
	CodeUnknownRegion     ErrorCode = "unknown_region"
	CodeUnknownTrack      ErrorCode = "unknown_track"
	CodeSessionNotFound   ErrorCode = "session_not_found"
	CodeIllegalTransition ErrorCode = "illegal_transition"
	CodeNotReady          ErrorCode = "quiz_not_complete"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodePayloadTooLarge   ErrorCode = "payload_too_large"
	CodeNotFound          ErrorCode = "not_found"
	CodeMethodNotAllowed  ErrorCode = "method_not_allowed"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound, false),
		sentinelHandler(domain.ErrNotReady, http.StatusConflict, CodeNotReady, true),
		sentinelHandler(domain.ErrIllegalTransition, http.StatusConflict, CodeIllegalTransition, true),
		sentinelHandler(domain.ErrUnknownRegion, http.StatusUnprocessableEntity, CodeUnknownRegion, true),
		sentinelHandler(domain.ErrUnknownTrack, http.StatusUnprocessableEntity, CodeUnknownTrack, true),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed, true),
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error. detailed exposes the full error text, otherwise only the sentinel text.
func sentinelHandler(sentinel error, status int, code ErrorCode, detailed bool) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if detailed {
			msg = clientMessage(err)
		}
		writeError(w, status, code, msg)
		return true
	}
}

// clientMessage strips the operation prefixes added while wrapping and keeps
// the domain part of the message.
func clientMessage(err error) string {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		return te.Error()
	}
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrInvalidInput.Error()); i > 0 {
		return msg[i:]
	}
	return msg
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

// decode reads a JSON body and validates it. On failure it writes the error
// response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, validationMessage(err))
		return false
	}
	return true
}

// validationMessage renders validator errors as "field: rule" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), rule))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
