// Package middleware provides the token gate for protected routes.
//
// AuthMiddleware reads the Authorization header, accepting either
// "Bearer <token>" or a bare token, verifies it and stores the user id in
// the request context. Failures are answered with 401 and the wrapped handler
// never runs. The gate does no database access.
//
//	gate := middleware.NewAuthMiddleware(tokens, metrics)
//	router.Handle("/menus", gate.HandlerFunc(h.createMenu)).Methods("POST")
//
//	userID, ok := middleware.UserIDFromContext(r)
package middleware
