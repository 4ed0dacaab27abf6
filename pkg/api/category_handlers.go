package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/menus"
	"github.com/platinummonkey/menuboard/pkg/middleware"
	"github.com/platinummonkey/menuboard/pkg/observability"
)

// CategoryHandlers handles the authenticated category routes
type CategoryHandlers struct {
	menus menus.Service
	gate  *middleware.AuthMiddleware
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(svc menus.Service, gate *middleware.AuthMiddleware) *CategoryHandlers {
	return &CategoryHandlers{menus: svc, gate: gate}
}

// RegisterRoutes registers category routes
func (h *CategoryHandlers) RegisterRoutes(router *mux.Router) {
	router.Handle("/categories", h.gate.HandlerFunc(h.createCategory)).Methods(http.MethodPost)
	router.Handle("/getCategories", h.gate.HandlerFunc(h.listCategories)).Methods(http.MethodGet)
	router.Handle("/categories/{category_id}", h.gate.HandlerFunc(h.updateCategory)).Methods(http.MethodPut)
	router.Handle("/categories/{category_id}", h.gate.HandlerFunc(h.deleteCategory)).Methods(http.MethodDelete)
}

type categoryRequest struct {
	MenuID int64  `json:"menu_id"`
	Name   string `json:"name"`
}

// createCategory handles POST /categories
func (h *CategoryHandlers) createCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	var req categoryRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.ValidateAll(w,
		httputil.Positive(req.MenuID, "menu_id"),
		httputil.NonEmpty(req.Name, "name"),
	) {
		return
	}

	category, err := h.menus.CreateCategory(r.Context(), userID, req.MenuID, req.Name)
	if err != nil {
		writeError(w, r, err, unauthorized("Menu does not belong to the logged-in user"))
		return
	}
	writeJSON(w, r, http.StatusOK, category)
}

// listCategories handles GET /getCategories
func (h *CategoryHandlers) listCategories(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	list, err := h.menus.ListCategories(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

// updateCategory handles PUT /categories/{category_id}
func (h *CategoryHandlers) updateCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

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

	category, err := h.menus.UpdateCategory(r.Context(), userID, categoryID, req.Name)
	if err != nil {
		writeError(w, r, err, unauthorized("Category does not belong to the logged-in user"))
		return
	}
	writeJSON(w, r, http.StatusOK, category)
}

// deleteCategory handles DELETE /categories/{category_id}
func (h *CategoryHandlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	categoryID, ok := httputil.ParsePathInt64OrError(w, r, "category_id")
	if !ok {
		return
	}

	result, err := h.menus.DeleteCategory(r.Context(), userID, categoryID)
	if err != nil {
		writeError(w, r, err, notFound("Category not found or not authorized to delete"))
		return
	}

	observability.FromContext(r.Context()).WithFields(map[string]interface{}{
		"category_id": categoryID,
		"items":       result.Items,
	}).Info("category deleted")
	httputil.WriteSuccessMessage(w, "Category and related items deleted successfully")
}
