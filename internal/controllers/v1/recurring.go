package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paydown/backend/internal/httputil"
	"github.com/paydown/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringTransactions)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransactions)
	}

	// The scheduler
	{
		r.OPTIONS("/run", OptionsSchedulerRun)
		r.POST("/run", RunScheduler)
	}

	// Recurring transaction with ID
	{
		r.OPTIONS("/:id", OptionsRecurringTransactionDetail)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring-transactions [options]
func OptionsRecurringTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring-transactions/run [options]
func OptionsSchedulerRun(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [options]
func OptionsRecurringTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecurringTransaction{})
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionResponse
// @Failure		400	{object}	RecurringTransactionResponse
// @Failure		404	{object}	RecurringTransactionResponse
// @Failure		500	{object}	RecurringTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [get]
func GetRecurringTransaction(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.Where("user_id = ?", userID).First(&recurring, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newRecurringTransaction(c, recurring)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Get recurring transactions
// @Description	Returns a list of recurring transactions
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionListResponse
// @Failure		400	{object}	RecurringTransactionListResponse
// @Failure		500	{object}	RecurringTransactionListResponse
// @Router			/v1/recurring-transactions [get]
// @Param			type		query	string	false	"Filter by transaction type"
// @Param			category	query	string	false	"Filter by category"
// @Param			frequency	query	string	false	"Filter by frequency"
// @Param			isActive	query	bool	false	"Filter for active templates"
// @Param			offset		query	uint	false	"The offset of the first RecurringTransaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of RecurringTransactions to return. Defaults to 50."
func GetRecurringTransactions(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	var filter RecurringTransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Order("datetime(recurring_transactions.next_run_date) ASC").
		Where("recurring_transactions.user_id = ?", userID).
		Where(&model, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var recurring []models.RecurringTransaction
	err = q.Find(&recurring).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecurringTransaction, 0)
	for _, r := range recurring {
		data = append(data, newRecurringTransaction(c, r))
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create recurring transactions
// @Description	Creates recurring transactions from the list of submitted data. The response code is the highest response code number that a single creation would have caused. If it is not equal to 201, at least one recurring transaction has an error.
// @Tags			RecurringTransactions
// @Produce		json
// @Success		201						{object}	RecurringTransactionCreateResponse
// @Failure		400						{object}	RecurringTransactionCreateResponse
// @Failure		500						{object}	RecurringTransactionCreateResponse
// @Param			recurringTransactions	body		[]RecurringTransactionEditable	true	"RecurringTransactions"
// @Router			/v1/recurring-transactions [post]
func CreateRecurringTransactions(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []RecurringTransactionEditable

	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringTransactionCreateResponse{}

	for _, editable := range editables {
		if !slices.Contains([]models.Frequency{models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly}, editable.Frequency) {
			status = r.appendError(errFrequencyInvalid, status)
			continue
		}

		recurring := editable.model(userID)

		// New templates always start out active, the scheduler retires them
		recurring.IsActive = true

		err := models.DB.Create(&recurring).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurringTransaction(c, recurring)
		r.Data = append(r.Data, RecurringTransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Update recurring transaction
// @Description	Updates an existing recurring transaction. Only values to be updated need to be specified. Updating the start date resets the schedule to it.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		200						{object}	RecurringTransactionResponse
// @Failure		400						{object}	RecurringTransactionResponse
// @Failure		404						{object}	RecurringTransactionResponse
// @Failure		500						{object}	RecurringTransactionResponse
// @Param			id						path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recurringTransaction	body		RecurringTransactionEditable	true	"RecurringTransaction"
// @Router			/v1/recurring-transactions/{id} [patch]
func UpdateRecurringTransaction(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.Where("user_id = ?", userID).First(&recurring, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	var update RecurringTransactionEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	if update.Amount.IsZero() {
		update.Amount = recurring.Amount
	}

	model := update.model(userID)

	// A new start date resets the schedule to it
	if slices.Contains(updateFields, "StartDate") {
		model.NextRunDate = update.StartDate
		updateFields = append(updateFields, "NextRunDate")
	}

	err = models.DB.Model(&recurring).Select("", updateFields...).Updates(model).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newRecurringTransaction(c, recurring)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Delete recurring transaction
// @Description	Deletes a recurring transaction. Transactions it has already generated are kept.
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [delete]
func DeleteRecurringTransaction(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.Where("user_id = ?", userID).First(&recurring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&recurring).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Run the scheduler
// @Description	Materializes all due occurrences of the user's active recurring transactions as ledger entries. Either all due entries are created or, on error, none.
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200		{object}	SchedulerRunResponse
// @Failure		400		{object}	SchedulerRunResponse
// @Failure		500		{object}	SchedulerRunResponse
// @Param			runDate	query		string	false	"Materialize occurrences due at this date instead of the current date. RFC3339 timestamp."
// @Router			/v1/recurring-transactions/run [post]
func RunScheduler(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SchedulerRunResponse{
			Error: &e,
		})
		return
	}

	var query struct {
		RunDate time.Time `form:"runDate" time_format:"2006-01-02" time_utc:"1"` // Day the scheduler runs for
	}

	if err := c.Bind(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SchedulerRunResponse{
			Error: &e,
		})
		return
	}

	runDate := query.RunDate
	if runDate.IsZero() {
		runDate = time.Now().In(time.UTC)
	}

	created, err := models.RunScheduler(userID, runDate)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SchedulerRunResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SchedulerRunResponse{
		Data: &SchedulerRunResult{
			CreatedTransactions: created,
		},
	})
}
