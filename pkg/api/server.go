package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/menus"
	"github.com/platinummonkey/menuboard/pkg/middleware"
	"github.com/platinummonkey/menuboard/pkg/observability"
	"github.com/platinummonkey/menuboard/pkg/tasks"
	"github.com/platinummonkey/menuboard/pkg/users"
)

// DefaultMaxBodyBytes caps request bodies when Dependencies.MaxBodyBytes is unset
const DefaultMaxBodyBytes = 1 << 20

// TokenService issues and verifies identity tokens
type TokenService interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, error)
}

// Dependencies are the collaborators the API server is built from
type Dependencies struct {
	Users  users.Service
	Menus  menus.Service
	Tasks  tasks.Service
	Tokens TokenService

	Logger  *observability.Logger
	Metrics *observability.Metrics // optional

	// PublicUserID owns the menus served by GET /getPublicMenus
	PublicUserID int64
	CORSOrigins  []string
	MaxBodyBytes int64
}

// Server represents our API server
type Server struct {
	router  *mux.Router
	handler http.Handler
}

// NewServer creates a new API server
func NewServer(deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{router: mux.NewRouter()}
	s.router.Use(observability.SpanRouteMiddleware)
	if deps.Metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(deps.Metrics))
	}

	s.setupRoutes(deps)

	// request id first so panic and access logs carry it
	chain := httputil.Chain(
		httputil.RequestIDMiddleware(deps.Logger),
		httputil.RecoveryMiddleware,
		httputil.LoggingMiddleware,
		httputil.CORSMiddleware(deps.CORSOrigins),
		httputil.MaxBytesMiddleware(deps.MaxBodyBytes),
	)
	s.handler = otelhttp.NewHandler(chain(s.router), "menuboard",
		otelhttp.WithSpanNameFormatter(spanName),
	)
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes(deps Dependencies) {
	gate := middleware.NewAuthMiddleware(deps.Tokens, deps.Metrics)

	s.router.HandleFunc("/", hello).Methods(http.MethodGet)

	s.RegisterRoutes(NewAuthHandlers(deps.Users, deps.Tokens, deps.Metrics))
	s.RegisterRoutes(NewMenuHandlers(deps.Menus, gate, deps.PublicUserID))
	s.RegisterRoutes(NewCategoryHandlers(deps.Menus, gate))
	s.RegisterRoutes(NewItemHandlers(deps.Menus, gate))
	s.RegisterRoutes(NewOpenHandlers(deps.Menus, deps.Metrics))
	s.RegisterRoutes(NewTaskHandlers(deps.Tasks, gate))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// RouteRegistrar is an interface for types that can register routes
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// RegisterRoutes registers routes from a RouteRegistrar
func (s *Server) RegisterRoutes(registrar RouteRegistrar) {
	registrar.RegisterRoutes(s.router)
}

// hello handles GET /
func hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello, World!"))
}

// spanName names the server span before routing. SpanRouteMiddleware
// replaces it with the route template once a route matches.
func spanName(_ string, r *http.Request) string {
	return r.Method
}
