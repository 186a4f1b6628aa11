package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mr-randomize/ecommerce-go/internal/address"
	"github.com/Mr-randomize/ecommerce-go/internal/checkout"
)

type CheckoutHandler struct {
	sessions *checkout.Sessions
}

func NewCheckoutHandler(sessions *checkout.Sessions) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

type AddressDTO struct {
	Country string `json:"country"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// SubmitRequestDTO carries the full checkout form. The billing block is
// ignored when billingSameAsShipping is set; the server clones shipping
// instead of trusting the client to.
type SubmitRequestDTO struct {
	Customer              checkout.CustomerFields `json:"customer"`
	ShippingAddress       AddressDTO              `json:"shippingAddress"`
	BillingSameAsShipping bool                    `json:"billingSameAsShipping"`
	BillingAddress        AddressDTO              `json:"billingAddress"`
	CreditCard            checkout.CardFields     `json:"creditCard"`
}

// Submit applies the submitted form to the session and runs one checkout
// attempt.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ctx := r.Context()
	orch := h.sessions.Orchestrator(ctx, sessionIDFromContext(ctx))
	form := orch.Form()

	form.Customer = req.Customer
	form.Card = req.CreditCard
	if err := applyAddress(r, form.Addresses, address.TargetShipping, req.ShippingAddress); err != nil {
		respondError(w, http.StatusBadGateway, "address_directory_failed", err.Error())
		return
	}
	if req.BillingSameAsShipping {
		form.Addresses.SetBillingSameAsShipping(true)
	} else {
		form.Addresses.SetBillingSameAsShipping(false)
		if err := applyAddress(r, form.Addresses, address.TargetBilling, req.BillingAddress); err != nil {
			respondError(w, http.StatusBadGateway, "address_directory_failed", err.Error())
			return
		}
	}

	result, err := orch.Submit(ctx)
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *CheckoutHandler) respondSubmitError(w http.ResponseWriter, err error) {
	var vErr *checkout.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "checkout form validation failed",
			Code:    "validation_failed",
			Details: vErr.Fields,
		})
		return
	}
	if errors.Is(err, checkout.ErrSubmissionInFlight) {
		respondError(w, http.StatusConflict, "submission_in_flight", err.Error())
		return
	}
	var gwErr *checkout.GatewayError
	if errors.As(err, &gwErr) {
		respondError(w, http.StatusBadGateway, "payment_gateway_failed", err.Error())
		return
	}
	var beErr *checkout.BackendError
	if errors.As(err, &beErr) {
		respondError(w, http.StatusBadGateway, "order_backend_failed", err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
}

// Status exposes the session's checkout status and prefilled form values.
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	orch := h.sessions.Orchestrator(r.Context(), sessionIDFromContext(r.Context()))
	resp := map[string]interface{}{
		"status":   orch.Status().String(),
		"customer": orch.Form().Customer,
	}
	if lastErr := orch.LastError(); lastErr != nil {
		resp["lastError"] = lastErr.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

func applyAddress(r *http.Request, form *address.Form, target address.Target, dto AddressDTO) error {
	if dto.Country != "" {
		if _, err := form.SelectCountry(r.Context(), target, dto.Country); err != nil {
			return err
		}
	}
	if dto.State != "" {
		form.SelectRegion(target, dto.State)
	}
	form.SetLines(target, dto.Street, dto.City, dto.ZipCode)
	return nil
}
