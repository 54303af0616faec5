package planner

import "github.com/shopspring/decimal"

// ProjectionStatus signals whether a savings target is reachable.
type ProjectionStatus string

const (
	StatusPossible    ProjectionStatus = "possible"
	StatusNotPossible ProjectionStatus = "not_possible"
)

// Projection is the answer to "how long until I have saved this amount".
type Projection struct {
	Status             ProjectionStatus `json:"status" example:"possible"`
	Message            string           `json:"message,omitempty" example:"no saving capacity available"`
	TargetAmount       decimal.Decimal  `json:"targetAmount" example:"1000"`
	MonthlySavingPower decimal.Decimal  `json:"monthlySavingPower" example:"500"`
	MonthsRequired     int64            `json:"monthsRequired" example:"2"`
}

// ProjectSavings computes how many months of saving reach a target amount.
//
// The saving power assumes every installment becomes savings once the debts
// are gone: it is free cash plus the total of all configured installments,
// flexible debts included. The projection is a capacity statement, not a
// schedule, it deliberately ignores how long the debts actually take.
func ProjectSavings(freeCash, totalEMI, target decimal.Decimal) Projection {
	power := freeCash.Add(totalEMI)

	if !power.IsPositive() {
		return Projection{
			Status:  StatusNotPossible,
			Message: "no saving capacity available",
		}
	}

	return Projection{
		Status:             StatusPossible,
		TargetAmount:       target.Round(2),
		MonthlySavingPower: power.Round(2),
		MonthsRequired:     target.Div(power).Ceil().IntPart(),
	}
}
