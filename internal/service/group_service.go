package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vaibhavdeo21/mergemoney/internal/access"
	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
	"github.com/vaibhavdeo21/mergemoney/internal/storage"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// GroupService manages groups and their membership.
type GroupService struct {
	store  storage.Store
	policy access.Policy
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store, policy access.Policy) *GroupService {
	return &GroupService{store: store, policy: policy}
}

// Create makes a new group owned by the actor. The actor becomes the admin
// and sole member.
func (s *GroupService) Create(ctx context.Context, actor *models.User, name, description string, budgetGoal float64) (*models.Group, error) {
	if !s.policy.Can(actor, nil, access.CanCreateGroups) {
		return nil, errs.Unauthorized(actor.Email, "create groups")
	}
	if len(strings.TrimSpace(name)) < 3 {
		return nil, errs.Validation("group name should be at least 3 characters")
	}
	if len(strings.TrimSpace(description)) < 5 {
		return nil, errs.Validation("group description should be at least 5 characters")
	}
	if budgetGoal < 0 {
		return nil, errs.Validation("budget goal cannot be negative")
	}

	group := &models.Group{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		AdminEmail:  actor.Email,
		BudgetGoal:  budgetGoal,
		Members: []models.Member{{
			Email:            actor.Email,
			Role:             models.RoleAdmin,
			SettlementStatus: models.SettlementNone,
		}},
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, errs.Collaborator("create group", err)
	}

	slog.Info("Group created", "group_id", group.ID, "admin", actor.Email)
	return group, nil
}

// List returns the actor's groups, paginated. Page numbers start at 1.
func (s *GroupService) List(ctx context.Context, actor *models.User, page, perPage int) ([]*models.Group, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	groups, total, err := s.store.ListGroupsByMember(ctx, actor.Email, perPage, (page-1)*perPage)
	if err != nil {
		return nil, Pagination{}, errs.Collaborator("list groups", err)
	}

	totalPages := (total + perPage - 1) / perPage
	return groups, Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}, nil
}

// Get retrieves one group. Non-members get a not-found, never a hint that
// the group exists; the global admin may inspect any group.
func (s *GroupService) Get(ctx context.Context, actor *models.User, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(actor.Email) && actor.Role != models.RoleAdmin {
		return nil, errs.NotFound("group", groupID)
	}
	return group, nil
}

// Delete removes a group and all its expenses. Gated on canDeleteGroups,
// which the default policy grants only to the group admin.
func (s *GroupService) Delete(ctx context.Context, actor *models.User, groupID string) error {
	group, err := s.Get(ctx, actor, groupID)
	if err != nil {
		return err
	}
	if !s.policy.Can(actor, group, access.CanDeleteGroups) {
		return errs.Unauthorized(actor.Email, "delete this group")
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return errs.Collaborator("delete group", err)
	}

	slog.Info("Group deleted", "group_id", groupID, "actor", actor.Email)
	return nil
}

// AddMembers invites new members by email. Emails already in the group are
// skipped. New members join as viewers with a clean settlement status.
func (s *GroupService) AddMembers(ctx context.Context, actor *models.User, groupID string, emails []string) (*models.Group, error) {
	group, err := s.Get(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if !s.policy.Can(actor, group, access.CanUpdateGroups) {
		return nil, errs.Unauthorized(actor.Email, "add members to this group")
	}

	var added []string
	for _, m := range models.NormalizeMembers(cleanEmails(emails)) {
		if group.IsMember(m.Email) {
			continue
		}
		group.Members = append(group.Members, m)
		added = append(added, m.Email)
	}
	if len(added) == 0 {
		return group, nil
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, errs.Collaborator("add members", err)
	}

	slog.Info("Members added", "group_id", groupID, "emails", added)
	return group, nil
}

// RemoveMember removes one member. Admin-only: the owning admin cannot be
// removed, and the actor cannot remove themself.
func (s *GroupService) RemoveMember(ctx context.Context, actor *models.User, groupID, email string) (*models.Group, error) {
	group, err := s.Get(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if access.EffectiveRole(actor, group) != models.RoleAdmin {
		return nil, errs.Unauthorized(actor.Email, "remove members from this group")
	}
	if email == group.AdminEmail {
		return nil, errs.Validation("the group admin cannot be removed")
	}
	if email == actor.Email {
		return nil, errs.Validation("you cannot remove yourself from the group")
	}
	if !group.IsMember(email) {
		return nil, errs.NotFound("member", email)
	}

	members := group.Members[:0]
	for _, m := range group.Members {
		if m.Email != email {
			members = append(members, m)
		}
	}
	group.Members = members

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, errs.Collaborator("remove member", err)
	}

	slog.Info("Member removed", "group_id", groupID, "email", email)
	return group, nil
}

// SetMemberRole changes a member's group-scoped role. Admin-only; the
// owning admin's role is fixed.
func (s *GroupService) SetMemberRole(ctx context.Context, actor *models.User, groupID, email string, role models.Role) (*models.Group, error) {
	group, err := s.Get(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if access.EffectiveRole(actor, group) != models.RoleAdmin {
		return nil, errs.Unauthorized(actor.Email, "change member roles in this group")
	}
	if !role.Valid() {
		return nil, errs.Validation("unknown role: %s", role)
	}
	if email == group.AdminEmail {
		return nil, errs.Validation("the group admin's role cannot be changed")
	}

	member := group.Member(email)
	if member == nil {
		return nil, errs.NotFound("member", email)
	}
	member.Role = role

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, errs.Collaborator("set member role", err)
	}

	slog.Info("Member role changed", "group_id", groupID, "email", email, "role", role)
	return group, nil
}

func cleanEmails(emails []string) []string {
	var out []string
	for _, e := range emails {
		if trimmed := strings.TrimSpace(strings.ToLower(e)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
