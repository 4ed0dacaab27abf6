// Package api exposes the menuboard HTTP surface.
//
// Handlers are grouped by resource, each group registering its own routes
// on the shared gorilla/mux router. Protected routes are wrapped by the
// token gate from pkg/middleware and read the caller with
// middleware.UserIDFromContext.
//
// Error responses follow one convention: 4xx bodies are {"message": "..."}
// and every 500 is the plain-text body "Server error", with the cause logged
// against the request id.
//
// Routes under /open mutate items and categories without a token. They exist
// for older clients and are logged at warn level on every call.
package api
