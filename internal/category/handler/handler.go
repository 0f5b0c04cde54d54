package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/web"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type CategoryHandler struct {
	uc              category.UseCase
	productUC       product.UseCase
	rs              *web.Responder
	defaultCategory string
	pageSize        int
	logger          logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, productUC product.UseCase, rs *web.Responder, defaultCategory string, pageSize int, log logger.ZapLogger) *CategoryHandler {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &CategoryHandler{
		uc:              uc,
		productUC:       productUC,
		rs:              rs,
		defaultCategory: defaultCategory,
		pageSize:        pageSize,
		logger:          log,
	}
}

func (h *CategoryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/category/{slug}", h.CategoryPage).Methods(http.MethodGet)
}

func (h *CategoryHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/category/"+h.defaultCategory, http.StatusFound)
}

func (h *CategoryHandler) CategoryPage(w http.ResponseWriter, r *http.Request) {
	cat, err := h.uc.GetCategory(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.rs.PlainError(w, r, err)
		return
	}

	products, err := h.productUC.ListProducts(r.Context(), cat.ID, h.pageSize)
	if err != nil {
		h.rs.PlainError(w, r, err)
		return
	}

	h.rs.HTML(w, r, http.StatusOK, "category.html", map[string]interface{}{
		"Title":    cat.Name,
		"Category": cat,
		"Products": products,
	})
}
