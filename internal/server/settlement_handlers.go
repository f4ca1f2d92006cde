package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaibhavdeo21/mergemoney/internal/middleware"
)

func (s *Server) handleRequestSettle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	group, err := s.settlements.Request(r.Context(), actor, chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

type approveMemberRequest struct {
	MemberEmail string `json:"memberEmail"`
}

func (s *Server) handleApproveMember(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	var req approveMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	group, err := s.settlements.ApproveMember(r.Context(), actor, chi.URLParam(r, "groupID"), req.MemberEmail)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

func (s *Server) handleConfirmSettle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	group, err := s.settlements.Confirm(r.Context(), actor, chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

func (s *Server) handleReopen(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	group, err := s.settlements.Reopen(r.Context(), actor, chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}
