package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaibhavdeo21/mergemoney/internal/middleware"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
	"github.com/vaibhavdeo21/mergemoney/internal/service"
)

type createGroupRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BudgetGoal  float64 `json:"budgetGoal"`
}

type groupListResponse struct {
	Groups     []*models.Group    `json:"groups"`
	Pagination service.Pagination `json:"pagination"`
}

// handleListGroups always returns the paginated envelope, never a bare
// array; older API iterations disagreed on the shape and this is the
// standardized one.
func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

	groups, pagination, err := s.groups.List(r.Context(), actor, page, perPage)
	if err != nil {
		respondError(w, err)
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	respondJSON(w, http.StatusOK, groupListResponse{Groups: groups, Pagination: pagination})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	group, err := s.groups.Create(r.Context(), actor, req.Name, req.Description, req.BudgetGoal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"groupId": group.ID, "group": group})
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	group, err := s.groups.Get(r.Context(), actor, chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	if err := s.groups.Delete(r.Context(), actor, chi.URLParam(r, "groupID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMembersRequest struct {
	GroupID string   `json:"groupId"`
	Emails  []string `json:"emails"`
}

func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	var req addMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	group, err := s.groups.AddMembers(r.Context(), actor, req.GroupID, req.Emails)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

type removeMemberRequest struct {
	GroupID string `json:"groupId"`
	Email   string `json:"email"`
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	var req removeMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	group, err := s.groups.RemoveMember(r.Context(), actor, req.GroupID, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

type setMemberRoleRequest struct {
	GroupID string      `json:"groupId"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
}

func (s *Server) handleSetMemberRole(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	var req setMemberRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	group, err := s.groups.SetMemberRole(r.Context(), actor, req.GroupID, req.Email, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}
