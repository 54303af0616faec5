package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/paydown/backend/internal/planner"
	pd_uuid "github.com/paydown/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type SummaryResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *planner.Summary `json:"data"`                                                          // The financial summary
}

type DebtPlanResponse struct {
	Error *string       `json:"error" example:"expenses and installments exceed the monthly income"` // The error, if any occurred
	Data  *planner.Plan `json:"data"`                                                                // The debt payoff plan
}

type SavingsPlanResponse struct {
	Error *string             `json:"error" example:"the targetAmount parameter must be larger than zero"` // The error, if any occurred
	Data  *planner.Projection `json:"data"`                                                                // The savings projection
}

type OverviewResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *planner.Overview `json:"data"`                                                          // The combined summary and debt plan
}

// PlannerQueryFilter narrows the ledger aggregation for all planner endpoints.
type PlannerQueryFilter struct {
	WalletID  pd_uuid.UUID `form:"wallet"`                             // Only aggregate transactions of this wallet
	FromDate  time.Time    `form:"fromDate" time_format:"2006-01-02"`  // Only aggregate transactions at and after this date
	UntilDate time.Time    `form:"untilDate" time_format:"2006-01-02"` // Only aggregate transactions before and at this date
}

func (f PlannerQueryFilter) scope(userID uuid.UUID) models.LedgerScope {
	scope := models.LedgerScope{
		UserID: userID,
		From:   f.FromDate,
		Until:  f.UntilDate,
	}

	if f.WalletID != pd_uuid.Nil {
		scope.WalletID = &f.WalletID.UUID
	}

	return scope
}

type DebtPlanQueryFilter struct {
	PlannerQueryFilter
	ReservedCash decimal.Decimal `form:"reservedCash"` // Monthly amount to keep untouched by debt payments
}

type SavingsPlanQueryFilter struct {
	PlannerQueryFilter
	TargetAmount decimal.Decimal `form:"targetAmount"` // The amount to save towards
}
