package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/menus"
	"github.com/platinummonkey/menuboard/pkg/middleware"
)

// ItemHandlers handles the authenticated item routes and the unscoped reads
type ItemHandlers struct {
	menus menus.Service
	gate  *middleware.AuthMiddleware
}

// NewItemHandlers creates a new item handlers instance
func NewItemHandlers(svc menus.Service, gate *middleware.AuthMiddleware) *ItemHandlers {
	return &ItemHandlers{menus: svc, gate: gate}
}

// RegisterRoutes registers item routes
func (h *ItemHandlers) RegisterRoutes(router *mux.Router) {
	router.Handle("/items", h.gate.HandlerFunc(h.createItem)).Methods(http.MethodPost)
	router.Handle("/updateItem", h.gate.HandlerFunc(h.updateItem)).Methods(http.MethodPut)
	router.Handle("/items/{item_id}", h.gate.HandlerFunc(h.deleteItem)).Methods(http.MethodDelete)
	router.Handle("/getItems", h.gate.HandlerFunc(h.listItems)).Methods(http.MethodGet)

	router.HandleFunc("/items", h.listAllItems).Methods(http.MethodGet)
	router.HandleFunc("/items/{item_id}", h.getItem).Methods(http.MethodGet)
	router.HandleFunc("/category/{category_id}", h.listCategoryItems).Methods(http.MethodGet)
}

// itemRequest is the body of the item create and update routes.
// Price is a pointer so a missing price can be told apart from zero.
type itemRequest struct {
	ItemID      int64    `json:"item_id"`
	CategoryID  int64    `json:"category_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

func (req itemRequest) input() menus.ItemInput {
	in := menus.ItemInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

// createItem handles POST /items
func (h *ItemHandlers) createItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	var req itemRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.CategoryID <= 0 || req.Name == "" || req.Price == nil {
		httputil.WriteBadRequest(w, msgMissingFields)
		return
	}

	item, err := h.menus.CreateItem(r.Context(), userID, req.input())
	if err != nil {
		writeError(w, r, err, unauthorized("Category does not belong to the logged-in user's menu"))
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

// updateItem handles PUT /updateItem
func (h *ItemHandlers) updateItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	var req itemRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.ItemID <= 0 || req.Name == "" || req.Description == "" || req.Price == nil {
		httputil.WriteBadRequest(w, msgMissingFields)
		return
	}

	item, err := h.menus.UpdateItem(r.Context(), userID, req.ItemID, req.input())
	if err != nil {
		writeError(w, r, err, unauthorized("Item does not belong to the logged-in user"))
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

// deleteItem handles DELETE /items/{item_id}
func (h *ItemHandlers) deleteItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	itemID, ok := httputil.ParsePathInt64OrError(w, r, "item_id")
	if !ok {
		return
	}

	if err := h.menus.DeleteItem(r.Context(), userID, itemID); err != nil {
		writeError(w, r, err, unauthorized("Item does not belong to the logged-in user"))
		return
	}
	httputil.WriteSuccessMessage(w, "Item deleted successfully")
}

// listItems handles GET /getItems
func (h *ItemHandlers) listItems(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r)

	list, err := h.menus.ListItems(r.Context(), userID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

// listAllItems handles GET /items
func (h *ItemHandlers) listAllItems(w http.ResponseWriter, r *http.Request) {
	list, err := h.menus.ListAllItems(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

// getItem handles GET /items/{item_id}
func (h *ItemHandlers) getItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := httputil.ParsePathInt64OrError(w, r, "item_id")
	if !ok {
		return
	}

	item, err := h.menus.GetItem(r.Context(), itemID)
	if err != nil {
		writeError(w, r, err, notFound("Item not found"))
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

// listCategoryItems handles GET /category/{category_id}
func (h *ItemHandlers) listCategoryItems(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := httputil.ParsePathInt64OrError(w, r, "category_id")
	if !ok {
		return
	}

	list, err := h.menus.ListItemsByCategory(r.Context(), categoryID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if len(list) == 0 {
		httputil.WriteNotFound(w, "No items found for this category")
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}
