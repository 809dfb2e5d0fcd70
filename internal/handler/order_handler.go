package handler

import (
	"net/http"

	"wacdo/internal/model"
	"wacdo/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler serves order endpoints. Every route requires authentication.
type OrderHandler struct {
	orders service.OrderService
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req model.OrderCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.Create(r.Context(), caller, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	orders, err := h.orders.List(r.Context(), caller)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// ListByStatus handles GET /orders/status/{statut}.
func (h *OrderHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	status := model.OrderStatus(r.PathValue("statut"))

	orders, err := h.orders.ListByStatus(r.Context(), caller, status)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// ListByPreparer handles GET /orders/preparateur/{id}.
func (h *OrderHandler) ListByPreparer(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	preparerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	orders, err := h.orders.ListByPreparer(r.Context(), caller, preparerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// ListDineIn handles GET /orders/sur-place.
func (h *OrderHandler) ListDineIn(w http.ResponseWriter, r *http.Request) {
	h.listByDineIn(w, r, true)
}

// ListTakeaway handles GET /orders/a-emporter.
func (h *OrderHandler) ListTakeaway(w http.ResponseWriter, r *http.Request) {
	h.listByDineIn(w, r, false)
}

func (h *OrderHandler) listByDineIn(w http.ResponseWriter, r *http.Request, dineIn bool) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	orders, err := h.orders.ListByDineIn(r.Context(), caller, dineIn)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.GetByID(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Total handles GET /orders/{id}/total.
func (h *OrderHandler) Total(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	total, err := h.orders.Total(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, total)
}

// Update handles PUT /orders/{id}.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req model.OrderUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.Update(r.Context(), caller, id, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// SetStatus handles PATCH /orders/{id}/status.
func (h *OrderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req model.OrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.SetStatus(r.Context(), caller, id, req.Status)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// AssignPreparer handles PATCH /orders/{id}/assign/{preparateur_id}.
func (h *OrderHandler) AssignPreparer(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	preparerID, err := pathID(r, "preparateur_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.AssignPreparer(r.Context(), caller, orderID, preparerID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.orders.Delete(r.Context(), caller, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
