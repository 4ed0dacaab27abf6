package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/menus"
	"github.com/platinummonkey/menuboard/pkg/middleware"
	"github.com/platinummonkey/menuboard/pkg/observability"
)

// MenuHandlers handles menu routes, including the public menu listing
type MenuHandlers struct {
	menus        menus.Service
	gate         *middleware.AuthMiddleware
	publicUserID int64
}

// NewMenuHandlers creates a new menu handlers instance
func NewMenuHandlers(svc menus.Service, gate *middleware.AuthMiddleware, publicUserID int64) *MenuHandlers {
	return &MenuHandlers{
		menus:        svc,
		gate:         gate,
		publicUserID: publicUserID,
	}
}

// RegisterRoutes registers menu routes
func (h *MenuHandlers) RegisterRoutes(router *mux.Router) {
	router.Handle("/menus", h.gate.HandlerFunc(h.createMenu)).Methods(http.MethodPost)
	router.Handle("/getMenus", h.gate.HandlerFunc(h.listMenus)).Methods(http.MethodPost)
	router.Handle("/updateMenu", h.gate.HandlerFunc(h.updateMenu)).Methods(http.MethodPut)
	router.Handle("/menus/{menu_id}", h.gate.HandlerFunc(h.deleteMenu)).Methods(http.MethodDelete)
	router.Handle("/getMenusWithDetails", h.gate.HandlerFunc(h.listMenusWithDetails)).Methods(http.MethodGet)

	router.HandleFunc("/getPublicMenus", h.listPublicMenus).Methods(http.MethodGet)
}

type menuRequest struct {
	MenuID      int64  `json:"menuId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// createMenu handles POST /menus
func (h *MenuHandlers) createMenu(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	var req menuRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.ValidateAll(w, httputil.NonEmpty(req.Name, "name")) {
		return
	}

	menu, err := h.menus.CreateMenu(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err, notFound("Menu not found"))
		return
	}
	writeJSON(w, r, http.StatusOK, menu)
}

// listMenus handles POST /getMenus
func (h *MenuHandlers) listMenus(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	list, err := h.menus.ListMenus(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

// updateMenu handles PUT /updateMenu
func (h *MenuHandlers) updateMenu(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	var req menuRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.ValidateAll(w,
		httputil.Positive(req.MenuID, "menuId"),
		httputil.NonEmpty(req.Name, "name"),
	) {
		return
	}

	menu, err := h.menus.UpdateMenu(r.Context(), userID, req.MenuID, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err, notFound("Menu not found"))
		return
	}
	writeJSON(w, r, http.StatusOK, menu)
}

// deleteMenu handles DELETE /menus/{menu_id}
func (h *MenuHandlers) deleteMenu(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	menuID, ok := httputil.ParsePathInt64OrError(w, r, "menu_id")
	if !ok {
		return
	}

	result, err := h.menus.DeleteMenu(r.Context(), userID, menuID)
	if err != nil {
		writeError(w, r, err, notFound("Menu not found or not authorized to delete"))
		return
	}

	observability.FromContext(r.Context()).WithFields(map[string]interface{}{
		"menu_id":    menuID,
		"categories": result.Categories,
		"items":      result.Items,
	}).Info("menu deleted")
	httputil.WriteSuccessMessage(w, "Menu and related data deleted successfully")
}

// listMenusWithDetails handles GET /getMenusWithDetails
func (h *MenuHandlers) listMenusWithDetails(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)
	h.writeDetails(w, r, userID)
}

// listPublicMenus handles GET /getPublicMenus
func (h *MenuHandlers) listPublicMenus(w http.ResponseWriter, r *http.Request) {
	h.writeDetails(w, r, h.publicUserID)
}

func (h *MenuHandlers) writeDetails(w http.ResponseWriter, r *http.Request, userID int64) {
	details, err := h.menus.ListMenusWithDetails(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, details)
}
