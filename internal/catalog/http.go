package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"PetShop/pkg/kit"
)

const msgProductNotFound = "Product not found"

type Server struct {
	Store Store
	Log   *zap.Logger
}

// Routes serves the catalog relative to the API prefix.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Get("/products/category/{categoryName}", s.listByCategory)
	r.Get("/categories", s.listCategories)

	return r
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListProducts(r.Context())
	if err != nil {
		s.serverError(w, "list products failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")

	// An unparsable id is reported exactly like an unknown one.
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, http.StatusNotFound, msgProductNotFound, nil)
		return
	}

	p, ok, err := s.Store.GetProduct(r.Context(), id)
	if err != nil {
		s.serverError(w, "get product failed", err, zap.Int("id", id))
		return
	}
	if !ok {
		kit.WriteError(w, http.StatusNotFound, msgProductNotFound, nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) listByCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "categoryName")

	products, err := s.Store.ListProductsByCategory(r.Context(), name)
	if err != nil {
		s.serverError(w, "list products by category failed", err, zap.String("category", name))
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Store.ListCategories(r.Context())
	if err != nil {
		s.serverError(w, "list categories failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, categories)
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(msg, append(fields, zap.Error(err))...)
	}
	kit.WriteError(w, http.StatusInternalServerError, "Internal server error", nil)
}
