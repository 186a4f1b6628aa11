package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mr-randomize/ecommerce-go/internal/cart"
)

type CartHandler struct {
	carts *cart.Manager
}

func NewCartHandler(carts *cart.Manager) *CartHandler {
	return &CartHandler{carts: carts}
}

type CartResponseDTO struct {
	Items  []cart.Item `json:"items"`
	Totals cart.Totals `json:"totals"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), sessionIDFromContext(r.Context()))
	respondJSON(w, http.StatusOK, CartResponseDTO{Items: store.Items(), Totals: store.Totals()})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item cart.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if item.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}
	if item.UnitPrice.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_unit_price", "unitPrice must not be negative")
		return
	}

	store := h.carts.Store(r.Context(), sessionIDFromContext(r.Context()))
	if err := store.AddItem(r.Context(), item); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, CartResponseDTO{Items: store.Items(), Totals: store.Totals()})
}

func (h *CartHandler) DecrementQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	store := h.carts.Store(r.Context(), sessionIDFromContext(r.Context()))
	if err := store.DecrementQuantity(r.Context(), productID); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "no such item in cart")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, CartResponseDTO{Items: store.Items(), Totals: store.Totals()})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	store := h.carts.Store(r.Context(), sessionIDFromContext(r.Context()))
	if err := store.RemoveItem(r.Context(), productID); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "no such item in cart")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, CartResponseDTO{Items: store.Items(), Totals: store.Totals()})
}
