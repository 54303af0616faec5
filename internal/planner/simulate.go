package planner

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// monthCap bounds the simulation. Debts that never receive discretionary
// cash can make the payoff unreachable, the cap guarantees termination.
const monthCap = 120

// ErrExpensesExceedIncome is returned when the monthly income does not cover
// living expenses plus the fixed installments. This is an expected domain
// condition, not a server fault.
var ErrExpensesExceedIncome = errors.New("expenses and installments exceed the monthly income")

// DebtPosition is an in-memory snapshot of a debt for one simulation run.
type DebtPosition struct {
	Name        string
	Remaining   decimal.Decimal
	Installment decimal.NullDecimal // Only set for debts with a fixed installment
	Flexible    bool
	Priority    int // Lower values receive discretionary cash first
}

// Payment is one payment towards one debt within a month.
type Payment struct {
	Debt   string          `json:"debt" example:"Girotto Bank"`
	Amount decimal.Decimal `json:"amount" example:"1000"`
}

// MonthlySnapshot lists the payments of one simulated month.
type MonthlySnapshot struct {
	Month    int       `json:"month" example:"1"`
	Payments []Payment `json:"payments"`
}

// Plan is the full payoff schedule produced by Simulate.
type Plan struct {
	TotalMonths      int               `json:"totalMonths" example:"2"`
	MonthlyBreakdown []MonthlySnapshot `json:"monthlyBreakdown"`
}

// Simulate projects the month-by-month payoff of a set of debts under a
// cash-flow constraint.
//
// Each month, every debt with a fixed installment is paid min(installment,
// remaining) regardless of discretionary cash. Flexible debts then receive
// the month's free cash in priority order until it runs out. The simulation
// ends when every debt is cleared or after 120 months, whichever comes
// first.
//
// Simulate is a pure function: the passed debt positions are never mutated,
// every month is computed as a fold producing a fresh state snapshot.
func Simulate(monthlyIncome, livingExpenses decimal.Decimal, debts []DebtPosition) (Plan, error) {
	mandatoryEMI := decimal.Zero
	for _, debt := range debts {
		if debt.Installment.Valid {
			mandatoryEMI = mandatoryEMI.Add(debt.Installment.Decimal)
		}
	}

	freeCash := monthlyIncome.Sub(livingExpenses).Sub(mandatoryEMI)
	if freeCash.IsNegative() {
		return Plan{}, ErrExpensesExceedIncome
	}

	// Lower priority numbers are serviced first, ties keep their order
	state := make([]DebtPosition, len(debts))
	copy(state, debts)
	sort.SliceStable(state, func(i, j int) bool {
		return state[i].Priority < state[j].Priority
	})

	plan := Plan{MonthlyBreakdown: []MonthlySnapshot{}}

	for month := 1; month <= monthCap; month++ {
		if allCleared(state) {
			break
		}

		state = payMonth(state, freeCash, &plan, month)
	}

	return plan, nil
}

// payMonth computes one month of payments and returns the new debt state.
func payMonth(state []DebtPosition, freeCash decimal.Decimal, plan *Plan, month int) []DebtPosition {
	extraCash := freeCash
	snapshot := MonthlySnapshot{Month: month, Payments: []Payment{}}

	next := make([]DebtPosition, len(state))
	copy(next, state)

	for i := range next {
		debt := next[i]

		// Already cleared debts are skipped from month one
		if !debt.Remaining.IsPositive() {
			continue
		}

		switch {
		case debt.Installment.Valid:
			// Fixed installments are excluded from free cash already, they
			// are paid regardless of discretionary cash availability
			payment := decimal.Min(debt.Installment.Decimal, debt.Remaining)
			next[i].Remaining = debt.Remaining.Sub(payment)
			snapshot.Payments = append(snapshot.Payments, Payment{
				Debt:   debt.Name,
				Amount: payment.Round(2),
			})

		case debt.Flexible && extraCash.IsPositive():
			payment := decimal.Min(extraCash, debt.Remaining)
			next[i].Remaining = debt.Remaining.Sub(payment)
			extraCash = extraCash.Sub(payment)
			snapshot.Payments = append(snapshot.Payments, Payment{
				Debt:   debt.Name,
				Amount: payment.Round(2),
			})

			// A non-flexible debt without installment qualifies for neither
			// branch. It is frozen, a valid if degenerate outcome.
		}
	}

	plan.MonthlyBreakdown = append(plan.MonthlyBreakdown, snapshot)
	plan.TotalMonths = month

	return next
}

func allCleared(state []DebtPosition) bool {
	for _, debt := range state {
		if debt.Remaining.IsPositive() {
			return false
		}
	}

	return true
}
