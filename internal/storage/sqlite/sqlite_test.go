package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vaibhavdeo21/mergemoney/internal/errs"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "mergemoney-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateUser and GetUserByEmail round trip", func(t *testing.T) {
		user := models.NewUser("alice@example.com", "Alice", "hash-a")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID || got.Name != "Alice" || got.Role != models.RoleViewer {
			t.Errorf("user mismatch: got %+v", got)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Email != "alice@example.com" {
			t.Errorf("email mismatch: got %s", byID.Email)
		}
	})

	t.Run("GetUserByEmail unknown returns not found", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if !errs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
	})

	t.Run("UpdateUserRole changes the stored role", func(t *testing.T) {
		user := models.NewUser("bob@example.com", "Bob", "hash-b")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		if err := store.UpdateUserRole(ctx, "bob@example.com", models.RoleManager); err != nil {
			t.Fatalf("UpdateUserRole failed: %v", err)
		}
		got, err := store.GetUserByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.Role != models.RoleManager {
			t.Errorf("role = %s, want manager", got.Role)
		}

		if err := store.UpdateUserRole(ctx, "nobody@example.com", models.RoleAdmin); !errs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
	})

	t.Run("DeleteUser removes the account", func(t *testing.T) {
		user := models.NewUser("gone@example.com", "Gone", "hash-g")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if err := store.DeleteUser(ctx, "gone@example.com"); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}
		if _, err := store.GetUserByEmail(ctx, "gone@example.com"); !errs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
		if err := store.DeleteUser(ctx, "gone@example.com"); !errs.IsNotFound(err) {
			t.Errorf("second delete: error = %v, want NotFoundError", err)
		}
	})

	t.Run("CreateGroup generates ID and persists members", func(t *testing.T) {
		group := &models.Group{
			Name:       "Roommates",
			AdminEmail: "alice@example.com",
			BudgetGoal: 500,
			Members: []models.Member{
				{Email: "alice@example.com", Role: models.RoleAdmin, SettlementStatus: models.SettlementNone},
				{Email: "bob@example.com", Role: models.RoleViewer, SettlementStatus: models.SettlementNone},
			},
		}

		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Roommates" || got.AdminEmail != "alice@example.com" || got.BudgetGoal != 500 {
			t.Errorf("group mismatch: got %+v", got)
		}
		if len(got.Members) != 2 {
			t.Fatalf("member count = %d, want 2", len(got.Members))
		}
		// Members come back ordered by email.
		if got.Members[0].Email != "alice@example.com" || got.Members[0].Role != models.RoleAdmin {
			t.Errorf("first member mismatch: %+v", got.Members[0])
		}
		if got.Members[1].SettlementStatus != models.SettlementNone {
			t.Errorf("settlement status = %v, want none", got.Members[1].SettlementStatus)
		}
	})

	t.Run("GetGroup unknown returns not found", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "no-such-group")
		if !errs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
	})

	t.Run("UpdateGroup replaces members and keeps the admin", func(t *testing.T) {
		group := &models.Group{
			Name:       "Trip",
			AdminEmail: "alice@example.com",
			Members: []models.Member{
				{Email: "alice@example.com", Role: models.RoleAdmin},
			},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		group.Name = "Trip 2026"
		group.AdminEmail = "hijacker@example.com"
		group.PaymentStatus.IsPendingApproval = true
		group.Members = append(group.Members, models.Member{
			Email:            "carol@example.com",
			Role:             models.RoleTreasurer,
			SettlementStatus: models.SettlementRequested,
		})
		if err := store.UpdateGroup(ctx, group); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Trip 2026" {
			t.Errorf("name = %s, want Trip 2026", got.Name)
		}
		if got.AdminEmail != "alice@example.com" {
			t.Errorf("admin = %s, the owner must not change on update", got.AdminEmail)
		}
		if !got.PaymentStatus.IsPendingApproval {
			t.Error("pending-approval flag not persisted")
		}
		if len(got.Members) != 2 {
			t.Fatalf("member count = %d, want 2", len(got.Members))
		}
		carol := got.Member("carol@example.com")
		if carol == nil || carol.Role != models.RoleTreasurer || carol.SettlementStatus != models.SettlementRequested {
			t.Errorf("carol mismatch: %+v", carol)
		}
	})

	t.Run("UpdateGroup unknown returns not found", func(t *testing.T) {
		err := store.UpdateGroup(ctx, &models.Group{ID: "no-such-group", Name: "x"})
		if !errs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
	})

	t.Run("ListGroupsByMember pages newest first", func(t *testing.T) {
		member := "pager@example.com"
		for i, name := range []string{"First", "Second", "Third"} {
			g := &models.Group{
				Name:       name,
				AdminEmail: member,
				CreatedAt:  int64(1000 + i),
				Members:    []models.Member{{Email: member, Role: models.RoleAdmin}},
			}
			if err := store.CreateGroup(ctx, g); err != nil {
				t.Fatalf("CreateGroup(%s) failed: %v", name, err)
			}
		}

		groups, total, err := store.ListGroupsByMember(ctx, member, 2, 0)
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		if len(groups) != 2 || groups[0].Name != "Third" || groups[1].Name != "Second" {
			t.Errorf("page mismatch: got %d groups, first %q", len(groups), groups[0].Name)
		}

		groups, total, err = store.ListGroupsByMember(ctx, member, 2, 2)
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if total != 3 || len(groups) != 1 || groups[0].Name != "First" {
			t.Errorf("second page mismatch: total=%d groups=%d", total, len(groups))
		}

		groups, total, err = store.ListGroupsByMember(ctx, "stranger@example.com", 10, 0)
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if total != 0 || len(groups) != 0 {
			t.Errorf("stranger should see no groups: total=%d groups=%d", total, len(groups))
		}
	})

	t.Run("CreateExpense and GetExpense round trip", func(t *testing.T) {
		group := &models.Group{
			Name:       "Dinner Club",
			AdminEmail: "alice@example.com",
			Members:    []models.Member{{Email: "alice@example.com", Role: models.RoleAdmin}},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Pizza night",
			Amount:      60,
			PayerEmail:  "alice@example.com",
			Splits: []models.Split{
				{Email: "alice@example.com", Amount: 30},
				{Email: "bob@example.com", Amount: 30},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" || expense.CreatedAt == 0 || expense.Date == 0 {
			t.Errorf("expense defaults not filled: %+v", expense)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Description != "Pizza night" || got.Amount != 60 || got.PayerEmail != "alice@example.com" {
			t.Errorf("expense mismatch: %+v", got)
		}
		if got.IsSettled || got.SettledBy != "" || got.SettledAt != 0 {
			t.Errorf("new expense should not be settled: %+v", got)
		}
		if len(got.Splits) != 2 || got.Splits[0].Email != "alice@example.com" || got.Splits[0].Amount != 30 {
			t.Errorf("splits mismatch: %+v", got.Splits)
		}
	})

	t.Run("SetExpensesSettled flips the whole group", func(t *testing.T) {
		group := &models.Group{
			Name:       "Settle Me",
			AdminEmail: "alice@example.com",
			Members:    []models.Member{{Email: "alice@example.com", Role: models.RoleAdmin}},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		for _, desc := range []string{"one", "two"} {
			e := &models.Expense{
				GroupID:     group.ID,
				Description: desc,
				Amount:      10,
				PayerEmail:  "alice@example.com",
				Splits:      []models.Split{{Email: "alice@example.com", Amount: 10}},
			}
			if err := store.CreateExpense(ctx, e); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
		}

		if err := store.SetExpensesSettled(ctx, group.ID, true, "alice@example.com", 1700000000); err != nil {
			t.Fatalf("SetExpensesSettled failed: %v", err)
		}
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("expense count = %d, want 2", len(expenses))
		}
		for _, e := range expenses {
			if !e.IsSettled || e.SettledBy != "alice@example.com" || e.SettledAt != 1700000000 {
				t.Errorf("expense %s not settled: %+v", e.ID, e)
			}
		}

		// Reopen path clears the flags back to NULL.
		if err := store.SetExpensesSettled(ctx, group.ID, false, "", 0); err != nil {
			t.Fatalf("SetExpensesSettled(false) failed: %v", err)
		}
		expenses, err = store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		for _, e := range expenses {
			if e.IsSettled || e.SettledBy != "" || e.SettledAt != 0 {
				t.Errorf("expense %s not reopened: %+v", e.ID, e)
			}
		}
	})

	t.Run("DeleteExpense removes splits too", func(t *testing.T) {
		group := &models.Group{
			Name:       "Delete Me",
			AdminEmail: "alice@example.com",
			Members:    []models.Member{{Email: "alice@example.com", Role: models.RoleAdmin}},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "doomed",
			Amount:      5,
			PayerEmail:  "alice@example.com",
			Splits:      []models.Split{{Email: "alice@example.com", Amount: 5}},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errs.IsNotFound(err) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); !errs.IsNotFound(err) {
			t.Errorf("second delete: error = %v, want NotFoundError", err)
		}
	})

	t.Run("DeleteGroup cascades members and expenses", func(t *testing.T) {
		group := &models.Group{
			Name:       "Cascade",
			AdminEmail: "alice@example.com",
			Members: []models.Member{
				{Email: "alice@example.com", Role: models.RoleAdmin},
				{Email: "bob@example.com", Role: models.RoleViewer},
			},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "shared cab",
			Amount:      20,
			PayerEmail:  "alice@example.com",
			Splits: []models.Split{
				{Email: "alice@example.com", Amount: 10},
				{Email: "bob@example.com", Amount: 10},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, group.ID); !errs.IsNotFound(err) {
			t.Errorf("group error = %v, want NotFoundError", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errs.IsNotFound(err) {
			t.Errorf("expense error = %v, want NotFoundError", err)
		}
	})
}
