package handler

import (
	"net/http"

	"wacdo/internal/model"
	"wacdo/internal/service"

	"github.com/rs/zerolog"
)

// MenuHandler serves menu catalog endpoints.
type MenuHandler struct {
	menus  service.MenuService
	logger zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menus service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		menus:  menus,
		logger: logger.With().Str("handler", "menu").Logger(),
	}
}

// Create handles POST /menus.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerIdentity(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req model.MenuCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	menu, err := h.menus.Create(r.Context(), caller, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, menu)
}

// List handles GET /menus.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	menus, err := h.menus.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, menus)
}

// ListAvailable handles GET /menus/available.
func (h *MenuHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	menus, err := h.menus.ListAvailable(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, menus)
}

// ListByType handles GET /menus/type/{type}.
func (h *MenuHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	t := model.MenuType(r.PathValue("type"))

	menus, err := h.menus.ListByType(r.Context(), t)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, menus)
}

// Get handles GET /menus/{id}.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	menu, err := h.menus.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// Update handles PUT /menus/{id}.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req model.MenuUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	menu, err := h.menus.Update(r.Context(), caller, id, &req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// Delete handles DELETE /menus/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.menus.Delete(r.Context(), caller, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// ToggleAvailability handles PATCH /menus/{id}/availability.
func (h *MenuHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
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

	menu, err := h.menus.ToggleAvailability(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// AddProducts handles POST /menus/{id}/products.
func (h *MenuHandler) AddProducts(w http.ResponseWriter, r *http.Request) {
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

	var req model.MenuProductsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	menu, err := h.menus.AddProducts(r.Context(), caller, id, req.ProductIDs)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// RemoveProducts handles DELETE /menus/{id}/products.
func (h *MenuHandler) RemoveProducts(w http.ResponseWriter, r *http.Request) {
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

	var req model.MenuProductsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	menu, err := h.menus.RemoveProducts(r.Context(), caller, id, req.ProductIDs)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}
