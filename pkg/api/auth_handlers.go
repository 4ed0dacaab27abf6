package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/platinummonkey/menuboard/pkg/auth"
	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/observability"
	"github.com/platinummonkey/menuboard/pkg/users"
)

const msgInvalidCredentials = "Invalid email or password"

// AuthHandlers handles registration and login
type AuthHandlers struct {
	users   users.Service
	tokens  TokenService
	metrics *observability.Metrics
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(svc users.Service, tokens TokenService, metrics *observability.Metrics) *AuthHandlers {
	return &AuthHandlers{
		users:   svc,
		tokens:  tokens,
		metrics: metrics,
	}
}

// RegisterRoutes registers authentication routes
func (h *AuthHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/newuser", h.register).Methods(http.MethodPost)
	router.HandleFunc("/login", h.login).Methods(http.MethodPost)
}

// register handles POST /newuser
func (h *AuthHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if !httputil.ValidateAll(w,
		httputil.NonEmpty(req.Username, "username"),
		httputil.NonEmpty(req.Email, "email"),
		httputil.NonEmpty(req.Password, "password"),
	) {
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, users.ErrEmailTaken) {
		httputil.WriteConflict(w, "Email is already registered")
		return
	}
	if errors.Is(err, users.ErrInvalidPassword) {
		httputil.WriteBadRequest(w, msgPasswordTooLong)
		return
	}
	if err != nil {
		writeError(w, r, err, notFound("User not found"))
		return
	}

	writeJSON(w, r, http.StatusCreated, user)
}

// login handles POST /login
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		h.observeLogin("rejected")
		httputil.WriteUnauthorized(w, msgInvalidCredentials)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		h.observeLogin("rejected")
		httputil.WriteUnauthorized(w, msgInvalidCredentials)
		return
	}
	if err != nil {
		h.observeLogin("error")
		serverError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.UserID)
	if err != nil {
		h.observeLogin("error")
		serverError(w, r, err)
		return
	}

	h.observeLogin("success")
	writeJSON(w, r, http.StatusOK, auth.TokenResponse{Token: token})
}

func (h *AuthHandlers) observeLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
