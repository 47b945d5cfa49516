package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"PetShop/pkg/kit"
)

const (
	msgProductNotFound = "Product not found"
	msgItemNotFound    = "Cart item not found"
	msgItemRemoved     = "Item removed from cart"
	msgBadBody         = "Invalid request body"
	msgBadQuantity     = "Invalid quantity"
	msgServerError     = "Internal server error"
)

type Server struct {
	Cart *Service
	Log  *zap.Logger
}

// Routes serves the cart relative to its mount point.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Post("/", s.add)
	r.Delete("/{id}", s.remove)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	items, err := s.Cart.ListCart(r.Context())
	if err != nil {
		s.serverError(w, "list cart failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddRequest(w, r)
	if err != nil {
		kit.WriteError(w, http.StatusBadRequest, msgBadBody, nil)
		return
	}

	// A missing or non-numeric productId can never match a product.
	if !req.ProductID.Valid {
		kit.WriteError(w, http.StatusNotFound, msgProductNotFound, nil)
		return
	}
	qty, ok := req.quantity()
	if !ok {
		kit.WriteError(w, http.StatusBadRequest, msgBadQuantity, nil)
		return
	}

	it, err := s.Cart.AddToCart(r.Context(), req.ProductID.Value, qty)
	switch {
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, http.StatusNotFound, msgProductNotFound, nil)
		return
	case errors.Is(err, ErrInvalidQuantity):
		kit.WriteError(w, http.StatusBadRequest, msgBadQuantity, nil)
		return
	case err != nil:
		s.serverError(w, "add to cart failed", err, zap.Int("product_id", req.ProductID.Value))
		return
	}

	kit.WriteJSON(w, http.StatusCreated, it)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		kit.WriteError(w, http.StatusNotFound, msgItemNotFound, nil)
		return
	}

	err = s.Cart.RemoveFromCart(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, http.StatusNotFound, msgItemNotFound, nil)
		return
	case err != nil:
		s.serverError(w, "remove from cart failed", err, zap.Int64("item_id", id))
		return
	}

	kit.WriteJSON(w, http.StatusOK, kit.MessageResponse{Message: msgItemRemoved})
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(msg, append(fields, zap.Error(err))...)
	}
	kit.WriteError(w, http.StatusInternalServerError, msgServerError, nil)
}
