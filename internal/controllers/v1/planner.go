package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paydown/backend/internal/httputil"
	"github.com/paydown/backend/internal/planner"
)

// RegisterPlannerRoutes registers the routes for the financial planner
// with the RouterGroup that is passed.
func RegisterPlannerRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", OptionsPlannerSummary)
	r.GET("/summary", GetPlannerSummary)

	r.OPTIONS("/debt-plan", OptionsPlannerDebtPlan)
	r.GET("/debt-plan", GetPlannerDebtPlan)

	r.OPTIONS("/savings-plan", OptionsPlannerSavingsPlan)
	r.GET("/savings-plan", GetPlannerSavingsPlan)

	r.OPTIONS("/overview", OptionsPlannerOverview)
	r.GET("/overview", GetPlannerOverview)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Planner
// @Success		204
// @Router			/v1/planner/summary [options]
func OptionsPlannerSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Planner
// @Success		204
// @Router			/v1/planner/debt-plan [options]
func OptionsPlannerDebtPlan(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Planner
// @Success		204
// @Router			/v1/planner/savings-plan [options]
func OptionsPlannerSavingsPlan(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Planner
// @Success		204
// @Router			/v1/planner/overview [options]
func OptionsPlannerOverview(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Financial summary
// @Description	Returns the monthly income, living expenses, mandatory installments and free cash aggregated over the user's ledger
// @Tags			Planner
// @Produce		json
// @Success		200			{object}	SummaryResponse
// @Failure		400			{object}	SummaryResponse
// @Failure		500			{object}	SummaryResponse
// @Param			wallet		query		string	false	"Only aggregate transactions of this wallet"
// @Param			fromDate	query		string	false	"Only aggregate transactions at and after this date"
// @Param			untilDate	query		string	false	"Only aggregate transactions before and at this date"
// @Router			/v1/planner/summary [get]
func GetPlannerSummary(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	var filter PlannerQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &e,
		})
		return
	}

	summary, err := planner.Summarize(filter.scope(userID))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	data := summary.Rounded()
	c.JSON(http.StatusOK, SummaryResponse{Data: &data})
}

// @Summary		Debt clearance plan
// @Description	Simulates month by month payments against the user's open debts and returns the schedule until all debts are cleared
// @Tags			Planner
// @Produce		json
// @Success		200				{object}	DebtPlanResponse
// @Failure		400				{object}	DebtPlanResponse
// @Failure		500				{object}	DebtPlanResponse
// @Param			reservedCash	query		string	false	"Monthly amount to keep untouched by debt payments"
// @Param			wallet			query		string	false	"Only aggregate transactions of this wallet"
// @Param			fromDate		query		string	false	"Only aggregate transactions at and after this date"
// @Param			untilDate		query		string	false	"Only aggregate transactions before and at this date"
// @Router			/v1/planner/debt-plan [get]
func GetPlannerDebtPlan(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtPlanResponse{
			Error: &e,
		})
		return
	}

	var filter DebtPlanQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, DebtPlanResponse{
			Error: &e,
		})
		return
	}

	if filter.ReservedCash.IsNegative() {
		e := errReservedCashNegative.Error()
		c.JSON(http.StatusBadRequest, DebtPlanResponse{
			Error: &e,
		})
		return
	}

	plan, err := planner.DebtPlan(filter.scope(userID), filter.ReservedCash)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtPlanResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, DebtPlanResponse{Data: &plan})
}

// @Summary		Savings projection
// @Description	Projects how many months of saving the full monthly capacity it takes to reach the target amount
// @Tags			Planner
// @Produce		json
// @Success		200				{object}	SavingsPlanResponse
// @Failure		400				{object}	SavingsPlanResponse
// @Failure		500				{object}	SavingsPlanResponse
// @Param			targetAmount	query		string	true	"The amount to save towards"
// @Param			wallet			query		string	false	"Only aggregate transactions of this wallet"
// @Param			fromDate		query		string	false	"Only aggregate transactions at and after this date"
// @Param			untilDate		query		string	false	"Only aggregate transactions before and at this date"
// @Router			/v1/planner/savings-plan [get]
func GetPlannerSavingsPlan(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsPlanResponse{
			Error: &e,
		})
		return
	}

	var filter SavingsPlanQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SavingsPlanResponse{
			Error: &e,
		})
		return
	}

	if !filter.TargetAmount.IsPositive() {
		e := errTargetAmountNotPositive.Error()
		c.JSON(http.StatusBadRequest, SavingsPlanResponse{
			Error: &e,
		})
		return
	}

	projection, err := planner.SavingsPlan(filter.scope(userID), filter.TargetAmount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavingsPlanResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SavingsPlanResponse{Data: &projection})
}

// @Summary		Financial overview
// @Description	Returns the financial summary together with a debt clearance plan. When expenses exceed the income the summary is still returned and the error field explains why no plan is possible.
// @Tags			Planner
// @Produce		json
// @Success		200			{object}	OverviewResponse
// @Failure		400			{object}	OverviewResponse
// @Failure		500			{object}	OverviewResponse
// @Param			wallet		query		string	false	"Only aggregate transactions of this wallet"
// @Param			fromDate	query		string	false	"Only aggregate transactions at and after this date"
// @Param			untilDate	query		string	false	"Only aggregate transactions before and at this date"
// @Router			/v1/planner/overview [get]
func GetPlannerOverview(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &e,
		})
		return
	}

	var filter PlannerQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, OverviewResponse{
			Error: &e,
		})
		return
	}

	overview, err := planner.BuildOverview(filter.scope(userID))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, OverviewResponse{Data: &overview})
}
