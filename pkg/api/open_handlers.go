package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/menus"
	"github.com/platinummonkey/menuboard/pkg/observability"
)

// OpenHandlers serves the unauthenticated mutation routes. Any caller may
// change any item or category through them, so every call is logged at warn.
type OpenHandlers struct {
	menus   menus.OpenService
	metrics *observability.Metrics
}

// NewOpenHandlers creates a new open handlers instance
func NewOpenHandlers(svc menus.OpenService, metrics *observability.Metrics) *OpenHandlers {
	return &OpenHandlers{menus: svc, metrics: metrics}
}

// RegisterRoutes registers the /open routes
func (h *OpenHandlers) RegisterRoutes(router *mux.Router) {
	open := router.PathPrefix("/open").Subrouter()
	open.HandleFunc("/items", h.createItem).Methods(http.MethodPost)
	open.HandleFunc("/items/{item_id}", h.updateItem).Methods(http.MethodPut)
	open.HandleFunc("/items/{item_id}", h.deleteItem).Methods(http.MethodDelete)
	open.HandleFunc("/categories/{category_id}", h.updateCategory).Methods(http.MethodPut)
}

func (h *OpenHandlers) audit(r *http.Request, operation string, fields map[string]interface{}) {
	if h.metrics != nil {
		h.metrics.OpenMutationsTotal.WithLabelValues(operation).Inc()
	}
	fields["operation"] = operation
	fields["remote_addr"] = r.RemoteAddr
	observability.FromContext(r.Context()).WithFields(fields).Warn("unauthenticated mutation")
}

// createItem handles POST /open/items
func (h *OpenHandlers) createItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.CategoryID <= 0 || req.Name == "" || req.Price == nil {
		httputil.WriteBadRequest(w, msgMissingFields)
		return
	}

	h.audit(r, "create_item", map[string]interface{}{"category_id": req.CategoryID})

	item, err := h.menus.CreateItemOpen(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err, notFound("Category not found"))
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

// updateItem handles PUT /open/items/{item_id}
func (h *OpenHandlers) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := httputil.ParsePathInt64OrError(w, r, "item_id")
	if !ok {
		return
	}

	var req itemRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Name == "" || req.Price == nil {
		httputil.WriteBadRequest(w, msgMissingFields)
		return
	}

	h.audit(r, "update_item", map[string]interface{}{"item_id": itemID})

	item, err := h.menus.UpdateItemOpen(r.Context(), itemID, req.input())
	if err != nil {
		writeError(w, r, err, notFound("Item not found"))
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

// deleteItem handles DELETE /open/items/{item_id}
func (h *OpenHandlers) deleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := httputil.ParsePathInt64OrError(w, r, "item_id")
	if !ok {
		return
	}

	h.audit(r, "delete_item", map[string]interface{}{"item_id": itemID})

	if err := h.menus.DeleteItemOpen(r.Context(), itemID); err != nil {
		writeError(w, r, err, notFound("Item not found"))
		return
	}
	httputil.WriteSuccessMessage(w, "Item deleted successfully")
}

// updateCategory handles PUT /open/categories/{category_id}
func (h *OpenHandlers) updateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := httputil.ParsePathInt64OrError(w, r, "category_id")
	if !ok {
		return
	}

	var req categoryRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.ValidateAll(w, httputil.NonEmpty(req.Name, "name")) {
		return
	}

	h.audit(r, "update_category", map[string]interface{}{"category_id": categoryID})

	category, err := h.menus.UpdateCategoryOpen(r.Context(), categoryID, req.Name)
	if err != nil {
		writeError(w, r, err, notFound("Category not found"))
		return
	}
	writeJSON(w, r, http.StatusOK, category)
}
