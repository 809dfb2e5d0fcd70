package router

import (
	"net/http"

	"wacdo/internal/auth"
	"wacdo/internal/handler"
	"wacdo/internal/metrics"
	"wacdo/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the endpoint handlers wired into the router.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Menu    *handler.MenuHandler
	Order   *handler.OrderHandler
}

// New builds the HTTP routing table. Catalog reads, the health check, the
// metrics endpoint and login are public; everything else carries a bearer
// token.
func New(h Handlers, tokens *auth.TokenService, m *metrics.Metrics, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(tokens, logger)

	public := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, m.Instrument(pattern, fn))
	}
	protected := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, m.Instrument(pattern, requireAuth(fn)))
	}

	mux.HandleFunc("GET /health", healthCheck)
	mux.Handle("GET /metrics", m.Handler())

	public("POST /auth/login", h.Auth.Login)

	protected("POST /users", h.User.Create)
	protected("GET /users", h.User.List)
	protected("GET /users/me", h.User.Profile)
	protected("PUT /users/me", h.User.UpdateProfile)
	protected("GET /users/{id}", h.User.Get)
	protected("PUT /users/{id}", h.User.Update)
	protected("DELETE /users/{id}", h.User.Delete)

	public("GET /products", h.Product.List)
	public("GET /products/available", h.Product.ListAvailable)
	public("GET /products/type/{type}", h.Product.ListByType)
	public("GET /products/{id}", h.Product.Get)
	protected("POST /products", h.Product.Create)
	protected("PUT /products/{id}", h.Product.Update)
	protected("DELETE /products/{id}", h.Product.Delete)
	protected("PATCH /products/{id}/availability", h.Product.ToggleAvailability)

	public("GET /menus", h.Menu.List)
	public("GET /menus/available", h.Menu.ListAvailable)
	public("GET /menus/type/{type}", h.Menu.ListByType)
	public("GET /menus/{id}", h.Menu.Get)
	protected("POST /menus", h.Menu.Create)
	protected("PUT /menus/{id}", h.Menu.Update)
	protected("DELETE /menus/{id}", h.Menu.Delete)
	protected("PATCH /menus/{id}/availability", h.Menu.ToggleAvailability)
	protected("POST /menus/{id}/products", h.Menu.AddProducts)
	protected("DELETE /menus/{id}/products", h.Menu.RemoveProducts)

	protected("POST /orders", h.Order.Create)
	protected("GET /orders", h.Order.List)
	protected("GET /orders/status/{statut}", h.Order.ListByStatus)
	protected("GET /orders/preparateur/{id}", h.Order.ListByPreparer)
	protected("GET /orders/sur-place", h.Order.ListDineIn)
	protected("GET /orders/a-emporter", h.Order.ListTakeaway)
	protected("GET /orders/{id}", h.Order.Get)
	protected("GET /orders/{id}/total", h.Order.Total)
	protected("PUT /orders/{id}", h.Order.Update)
	protected("PATCH /orders/{id}/status", h.Order.SetStatus)
	protected("PATCH /orders/{id}/assign/{preparateur_id}", h.Order.AssignPreparer)
	protected("DELETE /orders/{id}", h.Order.Delete)

	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)
	return root
}

// healthCheck reports service liveness.
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
