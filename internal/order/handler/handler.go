package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/fekuna/omnipos-storefront/internal/web"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	rs     *web.Responder
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, rs *web.Responder, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		rs:     rs,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(r *mux.Router) {
	requireUser := web.RequireUser(h.rs)
	r.HandleFunc("/checkout", h.CheckoutPage).Methods(http.MethodGet)
	r.HandleFunc("/checkout", h.Checkout).Methods(http.MethodPost)
	r.HandleFunc("/order/{id}/confirm", requireUser(h.ConfirmDelivery)).Methods(http.MethodPost)
	r.HandleFunc("/api/orders", requireUser(h.ListOrders)).Methods(http.MethodGet)
}

func (h *OrderHandler) previewData(r *http.Request, userID int64) map[string]interface{} {
	data := map[string]interface{}{"Title": "Checkout", "Total": decimal.Zero}
	view, err := h.uc.Preview(r.Context(), userID)
	if err != nil {
		return data
	}
	data["Items"] = view.Items
	data["Total"] = view.Total
	return data
}

func (h *OrderHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r.Context())
	if userID == 0 {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	view, err := h.uc.Preview(r.Context(), userID)
	if err != nil {
		h.rs.PlainError(w, r, err)
		return
	}
	h.rs.HTML(w, r, http.StatusOK, "checkout.html", map[string]interface{}{
		"Title": "Checkout",
		"Items": view.Items,
		"Total": view.Total,
	})
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r.Context())
	if userID == 0 {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.rs.HTMLError(w, r, "checkout.html", h.previewData(r, userID), apperror.Validation("invalid_request"))
		return
	}

	o, err := h.uc.Checkout(r.Context(), userID, &dto.CheckoutInput{
		Line1:      r.PostFormValue("line1"),
		City:       r.PostFormValue("city"),
		State:      r.PostFormValue("state"),
		PostalCode: r.PostFormValue("postal"),
	})
	if err != nil {
		h.rs.HTMLError(w, r, "checkout.html", h.previewData(r, userID), err)
		return
	}

	h.rs.HTML(w, r, http.StatusOK, "checkout.html", map[string]interface{}{
		"Title":   "Order placed",
		"Success": true,
		"OrderID": o.ID,
	})
}

func (h *OrderHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.rs.JSONError(w, r, apperror.NotFound("order_not_found"))
		return
	}

	if err := h.uc.ConfirmDelivery(r.Context(), auth.GetUserID(r.Context()), orderID); err != nil {
		h.rs.JSONError(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.uc.ListOrders(r.Context(), auth.GetUserID(r.Context()))
	if err != nil {
		h.rs.JSONError(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]interface{}{"ok": true, "orders": orders})
}
