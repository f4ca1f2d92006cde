package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaibhavdeo21/mergemoney/internal/middleware"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
	"github.com/vaibhavdeo21/mergemoney/internal/service"
)

type addExpenseResponse struct {
	Expense        *models.Expense `json:"expense"`
	BudgetExceeded bool            `json:"budgetExceeded"`
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	var input service.AddExpenseInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, err)
		return
	}

	expense, budgetExceeded, err := s.expenses.Add(r.Context(), actor, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, addExpenseResponse{Expense: expense, BudgetExceeded: budgetExceeded})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	expenses, err := s.expenses.ListByGroup(r.Context(), actor, chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	if err := s.expenses.Delete(r.Context(), actor, chi.URLParam(r, "expenseID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r.Context())

	balances, err := s.expenses.Balances(r.Context(), actor, chi.URLParam(r, "groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"balances": balances})
}
