package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/pkg/i18n"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

const codeInternal = "internal_error"

// Responder writes JSON and HTML responses and maps service errors to
// HTTP statuses with localized messages.
type Responder struct {
	tr       *i18n.Translator
	renderer *Renderer
	logger   logger.ZapLogger
}

func NewResponder(tr *i18n.Translator, renderer *Renderer, log logger.ZapLogger) *Responder {
	return &Responder{tr: tr, renderer: renderer, logger: log}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode is the code exposed to clients; unexpected errors never leak.
func ErrorCode(err error) string {
	if code := apperror.Code(err); code != "" {
		return code
	}
	return codeInternal
}

func (rs *Responder) Message(r *http.Request, code string) string {
	return rs.tr.T(code, r.Header.Get("Accept-Language"))
}

func (rs *Responder) JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (rs *Responder) JSONError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := ErrorCode(err)
	rs.logError(r, status, err)
	rs.JSON(w, status, map[string]interface{}{
		"ok":      false,
		"error":   code,
		"message": rs.Message(r, code),
	})
}

// HTML renders the named template. data may be nil.
func (rs *Responder) HTML(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["LoggedIn"] = auth.GetUserID(r.Context()) != 0
	if err := rs.renderer.Render(w, status, name, data); err != nil {
		rs.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, rs.Message(r, codeInternal), http.StatusInternalServerError)
	}
}

// HTMLError renders name with a localized message derived from err.
func (rs *Responder) HTMLError(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}, err error) {
	status := StatusFor(err)
	rs.logError(r, status, err)
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Error"] = rs.Message(r, ErrorCode(err))
	rs.HTML(w, r, status, name, data)
}

// PlainError writes a localized text body, e.g. for 404 pages.
func (rs *Responder) PlainError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	rs.logError(r, status, err)
	http.Error(w, rs.Message(r, ErrorCode(err)), status)
}

func (rs *Responder) logError(r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		rs.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		return
	}
	rs.logger.Debug("request rejected",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
}
