package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mr-randomize/ecommerce-go/internal/address"
)

type AddressHandler struct {
	resolver *address.Resolver
}

func NewAddressHandler(resolver *address.Resolver) *AddressHandler {
	return &AddressHandler{resolver: resolver}
}

func (h *AddressHandler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.resolver.Countries(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "address_directory_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string][]address.Country{"countries": countries})
}

func (h *AddressHandler) Regions(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	regions, err := h.resolver.Regions(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusBadGateway, "address_directory_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string][]address.Region{"regions": regions})
}
