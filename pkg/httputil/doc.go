// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Response Helpers
//
//	err := httputil.WriteJSON(w, http.StatusCreated, user)
//	httputil.WriteSuccessMessage(w, "Item deleted successfully")
//
// Client errors carry a JSON body of the form {"message": "..."}:
//
//	httputil.WriteBadRequest(w, "Missing required fields")
//	httputil.WriteUnauthorized(w, "Invalid email or password")
//	httputil.WriteNotFound(w, "Menu not found")
//
// Server errors are always the plain-text body "Server error":
//
//	httputil.WriteServerError(w)
//
// # Request Parsing
//
//	var req createMenuRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//	menuID, ok := httputil.ParsePathInt64OrError(w, r, "menu_id")
//
// # Validation
//
//	httputil.ValidateAll(w,
//		httputil.NonEmpty(req.Name, "name"),
//		httputil.Positive(req.MenuID, "menu_id"),
//	)
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware(logger),
//		httputil.RecoveryMiddleware,
//		httputil.LoggingMiddleware,
//		httputil.MaxBytesMiddleware(1<<20),
//	)
//
// # Related Packages
//
//   - pkg/middleware: token authentication
package httputil
