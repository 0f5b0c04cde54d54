package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/web"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type ProductHandler struct {
	uc         product.UseCase
	categoryUC category.UseCase
	rs         *web.Responder
	logger     logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, categoryUC category.UseCase, rs *web.Responder, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:         uc,
		categoryUC: categoryUC,
		rs:         rs,
		logger:     log,
	}
}

func (h *ProductHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/admin", h.AdminPage).Methods(http.MethodGet)
	r.HandleFunc("/admin", h.CreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/product/{id}", h.GetProduct).Methods(http.MethodGet)
}

func (h *ProductHandler) adminData(r *http.Request) (map[string]interface{}, error) {
	categories, err := h.categoryUC.ListCategories(r.Context())
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"Title": "Admin", "Categories": categories}, nil
}

func (h *ProductHandler) AdminPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.adminData(r)
	if err != nil {
		h.rs.PlainError(w, r, err)
		return
	}
	h.rs.HTML(w, r, http.StatusOK, "admin.html", data)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	data, err := h.adminData(r)
	if err != nil {
		h.rs.PlainError(w, r, err)
		return
	}

	input, err := parseProductForm(r)
	if err != nil {
		h.rs.HTMLError(w, r, "admin.html", data, err)
		return
	}
	if _, err := h.uc.AddProduct(r.Context(), input); err != nil {
		h.rs.HTMLError(w, r, "admin.html", data, err)
		return
	}

	data["Message"] = h.rs.Message(r, "product_created")
	h.rs.HTML(w, r, http.StatusOK, "admin.html", data)
}

func parseProductForm(r *http.Request) (*dto.CreateProductInput, error) {
	if err := r.ParseForm(); err != nil {
		return nil, apperror.Validation("invalid_request")
	}
	invalid := apperror.Validation("invalid_product")

	price, err := decimal.NewFromString(strings.TrimSpace(r.PostFormValue("price")))
	if err != nil {
		return nil, invalid
	}
	categoryID, err := strconv.ParseInt(r.PostFormValue("category_id"), 10, 64)
	if err != nil {
		return nil, invalid
	}
	var qty int64
	if raw := strings.TrimSpace(r.PostFormValue("qty")); raw != "" {
		// Bounded by the inventory INTEGER column.
		if qty, err = strconv.ParseInt(raw, 10, 32); err != nil {
			return nil, invalid
		}
	}

	return &dto.CreateProductInput{
		SKU:         r.PostFormValue("sku"),
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Price:       price,
		CategoryID:  categoryID,
		ImagePath:   r.PostFormValue("image_path"),
		Qty:         int(qty),
	}, nil
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.rs.JSONError(w, r, apperror.NotFound("product_not_found"))
		return
	}

	p, err := h.uc.GetProduct(r.Context(), id)
	if err != nil {
		h.rs.JSONError(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, map[string]interface{}{"ok": true, "product": p})
}
