// Package server wires the application services to the REST surface. The
// handlers stay thin: decode, delegate to a service, encode. Every error is
// caught at the boundary of the action that raised it and converted to a
// JSON message with the status its taxonomy implies.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaibhavdeo21/mergemoney/internal/auth"
	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/middleware"
	"github.com/vaibhavdeo21/mergemoney/internal/service"
	"github.com/vaibhavdeo21/mergemoney/internal/storage"
)

// Server holds the wired services and builds the router.
type Server struct {
	store       storage.Store
	authSvc     *service.AuthService
	users       *service.UserService
	groups      *service.GroupService
	expenses    *service.ExpenseService
	settlements *service.SettlementService
	jwtManager  *auth.JWTManager
	corsOrigins []string
}

// New creates a Server from its dependencies.
func New(
	store storage.Store,
	authSvc *service.AuthService,
	users *service.UserService,
	groups *service.GroupService,
	expenses *service.ExpenseService,
	settlements *service.SettlementService,
	jwtManager *auth.JWTManager,
	corsOrigins []string,
) *Server {
	return &Server{
		store:       store,
		authSvc:     authSvc,
		users:       users,
		groups:      groups,
		expenses:    expenses,
		settlements: settlements,
		jwtManager:  jwtManager,
		corsOrigins: corsOrigins,
	}
}

// Router builds the HTTP handler with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(middleware.RequireAuth(s.jwtManager, s.store)).Get("/me", s.handleMe)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.jwtManager, s.store))

		r.Get("/groups", s.handleListGroups)
		r.Post("/groups/create", s.handleCreateGroup)
		r.Patch("/groups/members/add", s.handleAddMembers)
		r.Patch("/groups/members/remove", s.handleRemoveMember)
		r.Patch("/groups/members/role", s.handleSetMemberRole)

		r.Route("/groups/{groupID}", func(r chi.Router) {
			r.Get("/", s.handleGetGroup)
			r.Delete("/", s.handleDeleteGroup)
			r.Get("/expenses", s.handleListExpenses)
			r.Get("/balances", s.handleBalances)
			r.Post("/request-settle", s.handleRequestSettle)
			r.Post("/approve-member", s.handleApproveMember)
			r.Post("/confirm-settle", s.handleConfirmSettle)
			r.Post("/reopen", s.handleReopen)
		})

		r.Post("/expenses/add", s.handleAddExpense)
		r.Delete("/expenses/{expenseID}", s.handleDeleteExpense)

		r.Get("/users", s.handleListUsers)
		r.Patch("/users/role", s.handleSetUserRole)
		r.Delete("/users/{email}", s.handleDeleteUser)
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps the error taxonomy onto HTTP statuses: validation 400,
// authorization 403, not-found 404, bad credentials 401, anything else 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errs.IsValidation(err):
		status = http.StatusBadRequest
		message = err.Error()
	case errs.IsAuthorization(err):
		status = http.StatusForbidden
		message = err.Error()
	case errs.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrEmailExists):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		slog.Error("Unhandled error", "error", err)
	}

	respondJSON(w, status, map[string]string{"message": message})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Validation("invalid request payload")
	}
	return nil
}
