package web

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

const headerRequestID = "X-Request-ID"

type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (c CookieConfig) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session resolves the session cookie into a user id stored on the request
// context. Unknown or expired tokens yield an anonymous request.
func Session(store auth.SessionStore, cookie CookieConfig, log logger.ZapLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			var userID int64
			if c, err := r.Cookie(cookie.Name); err == nil && c.Value != "" {
				token = c.Value
				id, err := store.Resolve(r.Context(), token)
				if err != nil {
					log.Warn("failed to resolve session", zap.Error(err))
				}
				userID = id
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), token, userID)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func AccessLog(log logger.ZapLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(headerRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(headerRequestID, reqID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.Info("http request",
				zap.String("request_id", reqID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func Recover(log logger.ZapLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Error("panic recovered",
						zap.Any("panic", p),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Limiter is satisfied by cache.RedisClient.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Throttle refuses POST requests from one client IP beyond limit per window.
// Limiter failures let the request through.
func Throttle(l Limiter, scope string, limit int, window time.Duration, rs *Responder, log logger.ZapLogger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || limit <= 0 {
				next(w, r)
				return
			}
			key := "ratelimit:" + scope + ":" + clientIP(r)
			ok, err := l.Allow(r.Context(), key, limit, window)
			if err != nil {
				log.Warn("rate limiter unavailable", zap.Error(err))
				next(w, r)
				return
			}
			if !ok {
				http.Error(w, rs.Message(r, "too_many_attempts"), http.StatusTooManyRequests)
				return
			}
			next(w, r)
		}
	}
}

// RequireUser rejects anonymous JSON API calls with 401.
func RequireUser(rs *Responder) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if auth.GetUserID(r.Context()) == 0 {
				rs.JSONError(w, r, apperror.Auth("login_required"))
				return
			}
			next(w, r)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
