package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaibhavdeo21/mergemoney/internal/middleware"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	users, err := s.users.List(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

type setUserRoleRequest struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func (s *Server) handleSetUserRole(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	var req setUserRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := s.users.SetRole(r.Context(), actor, req.Email, req.Role); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	if err := s.users.Delete(r.Context(), actor, chi.URLParam(r, "email")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
