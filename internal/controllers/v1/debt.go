package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paydown/backend/internal/httputil"
	"github.com/paydown/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterDebtRoutes registers the routes for debts with
// the RouterGroup that is passed.
func RegisterDebtRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDebts)
		r.GET("", GetDebts)
		r.POST("", CreateDebts)
	}

	// Debt with ID
	{
		r.OPTIONS("/:id", OptionsDebtDetail)
		r.GET("/:id", GetDebt)
		r.PATCH("/:id", UpdateDebt)
		r.DELETE("/:id", DeleteDebt)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Debts
// @Success		204
// @Router			/v1/debts [options]
func OptionsDebts(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [options]
func OptionsDebtDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Debt{})
}

// @Summary		Get debt
// @Description	Returns a specific debt
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtResponse
// @Failure		400	{object}	DebtResponse
// @Failure		404	{object}	DebtResponse
// @Failure		500	{object}	DebtResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [get]
func GetDebt(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	var debt models.Debt
	err = models.DB.Where("user_id = ?", userID).First(&debt, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	data := newDebt(c, debt)
	c.JSON(http.StatusOK, DebtResponse{Data: &data})
}

// @Summary		Get debts
// @Description	Returns a list of debts, ordered by priority
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtListResponse
// @Failure		400	{object}	DebtListResponse
// @Failure		500	{object}	DebtListResponse
// @Router			/v1/debts [get]
// @Param			creditorName	query	string	false	"Filter by creditor name"
// @Param			isFlexible		query	bool	false	"Filter for flexible debts"
// @Param			status			query	string	false	"Filter by debt status"
// @Param			offset			query	uint	false	"The offset of the first Debt returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of Debts to return. Defaults to 50."
func GetDebts(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtListResponse{
			Error: &e,
		})
		return
	}

	var filter DebtQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, DebtListResponse{
			Error: &e,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Order("debts.priority ASC, datetime(debts.created_at) ASC").
		Where("debts.user_id = ?", userID).
		Where(&model, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var debts []models.Debt
	err = q.Find(&debts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Debt, 0)
	for _, debt := range debts {
		data = append(data, newDebt(c, debt))
	}

	c.JSON(http.StatusOK, DebtListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create debts
// @Description	Creates debts from the list of submitted debt data. The response code is the highest response code number that a single debt creation would have caused. If it is not equal to 201, at least one debt has an error.
// @Tags			Debts
// @Produce		json
// @Success		201		{object}	DebtCreateResponse
// @Failure		400		{object}	DebtCreateResponse
// @Failure		500		{object}	DebtCreateResponse
// @Param			debts	body		[]DebtEditable	true	"Debts"
// @Router			/v1/debts [post]
func CreateDebts(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtCreateResponse{
			Error: &e,
		})
		return
	}

	var editables []DebtEditable

	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DebtCreateResponse{}

	for _, editable := range editables {
		debt := editable.model(userID)

		// A new debt that does not state otherwise is still fully open
		if debt.RemainingAmount.IsZero() {
			debt.RemainingAmount = debt.TotalAmount
		}

		err := models.DB.Create(&debt).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newDebt(c, debt)
		r.Data = append(r.Data, DebtResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Update debt
// @Description	Updates an existing debt. Only values to be updated need to be specified.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		200		{object}	DebtResponse
// @Failure		400		{object}	DebtResponse
// @Failure		404		{object}	DebtResponse
// @Failure		500		{object}	DebtResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			debt	body		DebtEditable	true	"Debt"
// @Router			/v1/debts/{id} [patch]
func UpdateDebt(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	var debt models.Debt
	err = models.DB.Where("user_id = ?", userID).First(&debt, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DebtEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	var update DebtEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	// If the total amount set via the API request is not existent or
	// is 0, we use the old amount
	if update.TotalAmount.IsZero() {
		update.TotalAmount = debt.TotalAmount
	}

	err = models.DB.Model(&debt).Select("", updateFields...).Updates(update.model(userID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DebtResponse{
			Error: &e,
		})
		return
	}

	data := newDebt(c, debt)
	c.JSON(http.StatusOK, DebtResponse{Data: &data})
}

// @Summary		Delete debt
// @Description	Deletes a debt
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [delete]
func DeleteDebt(c *gin.Context) {
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

	var debt models.Debt
	err = models.DB.Where("user_id = ?", userID).First(&debt, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&debt).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
