// Package planner implements the financial planning core: ledger
// aggregation, the debt payoff simulation and the savings projection.
package planner

import (
	"github.com/paydown/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// DebtServiceCategories are the category patterns whose expense entries are
// considered debt service. They are excluded from living expenses because
// debt service is accounted for through installments, counting both would
// double the burden.
var DebtServiceCategories = []string{"Loan", "EMI", "Debt"}

// Summary is the derived financial state of one ledger scope. It is never
// persisted.
type Summary struct {
	TotalIncome    decimal.Decimal `json:"totalIncome" example:"5000"`
	LivingExpenses decimal.Decimal `json:"livingExpenses" example:"2000"`
	MandatoryEMI   decimal.Decimal `json:"mandatoryEmi" example:"1000"`
	FreeCash       decimal.Decimal `json:"freeCash" example:"2000"` // Negative free cash is a meaningful signal, not an error
}

// Rounded returns the summary with all figures rounded to two decimal
// places. Rounding happens only at the API boundary, internal math keeps the
// full precision.
func (s Summary) Rounded() Summary {
	return Summary{
		TotalIncome:    s.TotalIncome.Round(2),
		LivingExpenses: s.LivingExpenses.Round(2),
		MandatoryEMI:   s.MandatoryEMI.Round(2),
		FreeCash:       s.FreeCash.Round(2),
	}
}

// Summarize aggregates the ledger of one scope into a financial summary.
//
// Living expenses exclude debt-service categories. The mandatory EMI only
// counts non-flexible debts, flexible debts are serviced from free cash.
func Summarize(scope models.LedgerScope) (Summary, error) {
	income, err := models.TransactionsSum(scope, models.TransactionTypeIncome)
	if err != nil {
		return Summary{}, err
	}

	expensesByCategory, err := models.CategorySums(scope, models.TransactionTypeExpense)
	if err != nil {
		return Summary{}, err
	}

	livingExpenses := decimal.Zero
	for category, sum := range expensesByCategory {
		if isDebtService(category) {
			continue
		}

		livingExpenses = livingExpenses.Add(sum)
	}

	mandatoryEMI, err := models.DebtInstallmentSum(scope.UserID, true)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalIncome:    income,
		LivingExpenses: livingExpenses,
		MandatoryEMI:   mandatoryEMI,
		FreeCash:       income.Sub(livingExpenses).Sub(mandatoryEMI),
	}, nil
}

func isDebtService(category string) bool {
	for _, pattern := range DebtServiceCategories {
		if glob.Glob(pattern, category) {
			return true
		}
	}

	return false
}
