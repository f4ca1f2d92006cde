package calculator

import (
	"math"
	"reflect"
	"testing"

	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

func expense(payer string, amount float64, splits map[string]float64) *models.Expense {
	e := &models.Expense{PayerEmail: payer, Amount: amount}
	for email, share := range splits {
		e.Splits = append(e.Splits, models.Split{Email: email, Amount: share})
	}
	return e
}

func TestComputeBalances(t *testing.T) {
	members := []string{"a@x.com", "b@x.com", "c@x.com"}

	t.Run("equal split nets payer positive", func(t *testing.T) {
		expenses := []*models.Expense{
			expense("a@x.com", 300, map[string]float64{"a@x.com": 100, "b@x.com": 100, "c@x.com": 100}),
		}
		balances := ComputeBalances(expenses, members)

		want := map[string]float64{"a@x.com": 200, "b@x.com": -100, "c@x.com": -100}
		if !reflect.DeepEqual(balances, want) {
			t.Errorf("balances = %v, want %v", balances, want)
		}
	})

	t.Run("empty expense list yields zero map over members", func(t *testing.T) {
		balances := ComputeBalances(nil, members)
		if len(balances) != 3 {
			t.Fatalf("got %d entries, want 3", len(balances))
		}
		for member, balance := range balances {
			if balance != 0 {
				t.Errorf("%s balance = %v, want 0", member, balance)
			}
		}
	})

	t.Run("member untouched by expenses still appears", func(t *testing.T) {
		expenses := []*models.Expense{
			expense("a@x.com", 50, map[string]float64{"b@x.com": 50}),
		}
		balances := ComputeBalances(expenses, members)
		if balance, ok := balances["c@x.com"]; !ok || balance != 0 {
			t.Errorf("c@x.com balance = %v (present=%v), want 0 entry", balance, ok)
		}
	})

	t.Run("conservation across a messy expense set", func(t *testing.T) {
		expenses := []*models.Expense{
			expense("a@x.com", 120.50, map[string]float64{"a@x.com": 40.17, "b@x.com": 40.17, "c@x.com": 40.16}),
			expense("b@x.com", 75.25, map[string]float64{"a@x.com": 37.63, "c@x.com": 37.62}),
			expense("c@x.com", 9.99, map[string]float64{"b@x.com": 9.99}),
		}
		balances := ComputeBalances(expenses, members)

		var total float64
		for _, balance := range balances {
			total += balance
		}
		if math.Abs(total) > 1e-6 {
			t.Errorf("sum of balances = %v, want 0", total)
		}
	})

	t.Run("order of expenses does not matter", func(t *testing.T) {
		e1 := expense("a@x.com", 100, map[string]float64{"b@x.com": 60, "c@x.com": 40})
		e2 := expense("b@x.com", 30, map[string]float64{"a@x.com": 15, "c@x.com": 15})

		forward := ComputeBalances([]*models.Expense{e1, e2}, members)
		reversed := ComputeBalances([]*models.Expense{e2, e1}, members)
		if !reflect.DeepEqual(forward, reversed) {
			t.Errorf("forward = %v, reversed = %v", forward, reversed)
		}
	})

	t.Run("recomputation is idempotent", func(t *testing.T) {
		expenses := []*models.Expense{
			expense("a@x.com", 300, map[string]float64{"a@x.com": 100, "b@x.com": 100, "c@x.com": 100}),
		}
		first := ComputeBalances(expenses, members)
		second := ComputeBalances(expenses, members)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("first = %v, second = %v", first, second)
		}
	})
}

func TestDebtors(t *testing.T) {
	balances := map[string]float64{
		"a@x.com": 200,
		"b@x.com": -100,
		"c@x.com": -100,
		"d@x.com": 0,
		"e@x.com": -0.005, // noise below epsilon, not a debtor
	}
	debtors := Debtors(balances)
	if len(debtors) != 2 {
		t.Fatalf("debtors = %v, want exactly b and c", debtors)
	}
	for _, d := range debtors {
		if d != "b@x.com" && d != "c@x.com" {
			t.Errorf("unexpected debtor %s", d)
		}
	}
}

func TestIsCreditor(t *testing.T) {
	balances := map[string]float64{"a@x.com": 200, "b@x.com": -100, "c@x.com": 0.005}
	if !IsCreditor(balances, "a@x.com") {
		t.Error("a@x.com should be a creditor")
	}
	if IsCreditor(balances, "b@x.com") {
		t.Error("b@x.com should not be a creditor")
	}
	if IsCreditor(balances, "c@x.com") {
		t.Error("balance inside epsilon should not count as creditor")
	}
}
