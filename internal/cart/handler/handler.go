package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/web"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Qty       *int  `json:"qty"`
}

type updateItemsRequest struct {
	Items []dto.ItemUpdate `json:"items"`
}

type CartHandler struct {
	uc     cart.UseCase
	rs     *web.Responder
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, rs *web.Responder, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		rs:     rs,
		logger: log,
	}
}

func (h *CartHandler) RegisterRoutes(r *mux.Router) {
	requireUser := web.RequireUser(h.rs)
	r.HandleFunc("/cart", h.CartPage).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", requireUser(h.GetCart)).Methods(http.MethodGet)
	r.HandleFunc("/api/cart/add", requireUser(h.AddItem)).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/update", requireUser(h.UpdateItems)).Methods(http.MethodPost)
}

func (h *CartHandler) CartPage(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r.Context())
	if userID == 0 {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	view, err := h.uc.View(r.Context(), userID)
	if err != nil {
		h.rs.PlainError(w, r, err)
		return
	}
	h.rs.HTML(w, r, http.StatusOK, "cart.html", map[string]interface{}{
		"Title": "Cart",
		"Items": view.Items,
		"Total": view.Total,
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.uc.View(r.Context(), auth.GetUserID(r.Context()))
	if err != nil {
		h.rs.JSONError(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"items": view.Items,
		"total": view.Total,
	})
}

// AddItem treats a missing qty as 1.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rs.JSONError(w, r, apperror.Validation("invalid_request"))
		return
	}
	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	err := h.uc.AddItem(r.Context(), auth.GetUserID(r.Context()), &dto.AddItemInput{
		ProductID: req.ProductID,
		Qty:       qty,
	})
	if err != nil {
		h.rs.JSONError(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *CartHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	var req updateItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rs.JSONError(w, r, apperror.Validation("invalid_request"))
		return
	}

	if err := h.uc.UpdateItems(r.Context(), auth.GetUserID(r.Context()), req.Items); err != nil {
		h.rs.JSONError(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
