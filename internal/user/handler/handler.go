package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/user"
	"github.com/fekuna/omnipos-storefront/internal/user/dto"
	"github.com/fekuna/omnipos-storefront/internal/web"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type UserHandler struct {
	uc     user.UseCase
	rs     *web.Responder
	cookie web.CookieConfig
	guard  func(http.HandlerFunc) http.HandlerFunc
	logger logger.ZapLogger
}

// NewUserHandler builds the login/register handler. guard wraps POST /login
// and may be nil.
func NewUserHandler(uc user.UseCase, rs *web.Responder, cookie web.CookieConfig, guard func(http.HandlerFunc) http.HandlerFunc, log logger.ZapLogger) *UserHandler {
	if guard == nil {
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	return &UserHandler{
		uc:     uc,
		rs:     rs,
		cookie: cookie,
		guard:  guard,
		logger: log,
	}
}

func (h *UserHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/login", h.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.guard(h.LoginSubmit)).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)
	r.HandleFunc("/api/me", h.Me).Methods(http.MethodGet)
}

func (h *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.rs.HTML(w, r, http.StatusOK, "login.html", map[string]interface{}{"Title": "Login"})
}

func (h *UserHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.rs.HTMLError(w, r, "login.html", nil, apperror.Validation("invalid_request"))
		return
	}

	var (
		sess *dto.Session
		err  error
	)
	switch r.PostFormValue("action") {
	case "register":
		sess, err = h.uc.Register(r.Context(), &dto.RegisterInput{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
			FullName: r.PostFormValue("fullname"),
		})
	default:
		sess, err = h.uc.Login(r.Context(), &dto.LoginInput{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		})
	}
	if err != nil {
		h.rs.HTMLError(w, r, "login.html", map[string]interface{}{"Title": "Login"}, err)
		return
	}

	h.cookie.Set(w, sess.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Logout(r.Context(), auth.GetSessionToken(r.Context())); err != nil {
		h.logger.Warn("failed to delete session", zap.Error(err))
	}
	h.cookie.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.uc.CurrentUser(r.Context(), auth.GetSessionToken(r.Context()))
	if err != nil {
		h.rs.JSONError(w, r, err)
		return
	}
	if u == nil {
		h.rs.JSONError(w, r, apperror.Auth("login_required"))
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]interface{}{"ok": true, "user": u})
}
