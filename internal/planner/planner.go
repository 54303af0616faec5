package planner

import (
	"errors"

	"github.com/paydown/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Overview is the combined financial picture of one scope: the aggregated
// summary plus the debt payoff plan when one can be computed.
type Overview struct {
	Summary  Summary `json:"summary"`
	DebtPlan *Plan   `json:"debtPlan,omitempty"`
	Error    *string `json:"error,omitempty" example:"expenses and installments exceed the monthly income"`
}

// BuildOverview aggregates the scope's ledger and simulates the payoff of
// the user's active debts in one call.
//
// When the summary shows negative free cash, the overview still carries the
// summary and the simulation error becomes part of the payload instead of
// failing the whole overview.
func BuildOverview(scope models.LedgerScope) (Overview, error) {
	summary, err := Summarize(scope)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{Summary: summary.Rounded()}

	if summary.FreeCash.IsNegative() {
		message := ErrExpensesExceedIncome.Error()
		overview.Error = &message
		return overview, nil
	}

	plan, err := DebtPlan(scope, decimal.Zero)
	if err != nil {
		if errors.Is(err, ErrExpensesExceedIncome) {
			message := err.Error()
			overview.Error = &message
			return overview, nil
		}

		return Overview{}, err
	}

	overview.DebtPlan = &plan
	return overview, nil
}

// DebtPlan simulates the payoff of the user's active debts under the scope's
// cash flow.
//
// reservedCash is a monthly amount the user wants to keep untouched. It is
// treated as an additional living expense, shrinking the cash available to
// flexible debts.
func DebtPlan(scope models.LedgerScope, reservedCash decimal.Decimal) (Plan, error) {
	summary, err := Summarize(scope)
	if err != nil {
		return Plan{}, err
	}

	debts, err := models.ActiveDebts(scope.UserID)
	if err != nil {
		return Plan{}, err
	}

	return Simulate(summary.TotalIncome, summary.LivingExpenses.Add(reservedCash), positions(debts))
}

// SavingsPlan projects how long saving towards a target takes under the
// scope's cash flow.
func SavingsPlan(scope models.LedgerScope, target decimal.Decimal) (Projection, error) {
	summary, err := Summarize(scope)
	if err != nil {
		return Projection{}, err
	}

	totalEMI, err := models.DebtInstallmentSum(scope.UserID, false)
	if err != nil {
		return Projection{}, err
	}

	return ProjectSavings(summary.FreeCash, totalEMI, target), nil
}

// positions maps persisted debts to simulation inputs. The installment only
// carries over for non-flexible debts: a flexible debt's installment is a
// suggestion, in the simulation it competes for free cash like any other
// flexible debt.
func positions(debts []models.Debt) []DebtPosition {
	out := make([]DebtPosition, 0, len(debts))

	for _, debt := range debts {
		position := DebtPosition{
			Name:      debt.CreditorName,
			Remaining: debt.RemainingAmount,
			Flexible:  debt.IsFlexible,
			Priority:  debt.Priority,
		}

		if !debt.IsFlexible && debt.EMIAmount.Valid {
			position.Installment = debt.EMIAmount
		}

		out = append(out, position)
	}

	return out
}
