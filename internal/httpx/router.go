package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter assembles the full HTTP surface: cart, checkout and address
// routes under /api/v1, plus health and metrics.
func NewRouter(cartH *CartHandler, checkoutH *CheckoutHandler, addressH *AddressHandler,
	metricsH http.Handler, requestTimeout time.Duration, serviceName string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if metricsH != nil {
		r.Handle("/metrics", metricsH)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartH.GetCart)
			r.Post("/items", cartH.AddItem)
			r.Post("/items/{productID}/decrement", cartH.DecrementQuantity)
			r.Delete("/items/{productID}", cartH.RemoveItem)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutH.Status)
			r.Post("/", checkoutH.Submit)
		})
		r.Route("/address", func(r chi.Router) {
			r.Get("/countries", addressH.Countries)
			r.Get("/countries/{code}/regions", addressH.Regions)
		})
	})

	return otelhttp.NewHandler(r, serviceName)
}
