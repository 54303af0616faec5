package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/httputil"
	"github.com/paydown/backend/internal/models"
	"github.com/paydown/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgets)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}

	// Spending summary
	{
		r.OPTIONS("/:id/summary", OptionsBudgetSummary)
		r.GET("/:id/summary", GetBudgetSummary)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Budget{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/summary [options]
func OptionsBudgetSummary(c *gin.Context) {
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

	var budget models.Budget
	err = models.DB.Where("user_id = ?", userID).First(&budget, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get budget
// @Description	Returns a specific budget with its category limits
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget, categories, err := getBudgetResource(userID, uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget, categories)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Get budgets
// @Description	Returns a list of budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			month	query	string	false	"Filter by month, in YYYY-MM format"
// @Param			offset	query	uint	false	"The offset of the first Budget returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Budgets to return. Defaults to 50."
func GetBudgets(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &e,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Order("datetime(budgets.month) DESC").
		Where("budgets.user_id = ?", userID).
		Where(&model, queryFields...)

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, BudgetListResponse{
				Error: &e,
			})
			return
		}

		q = q.Where("budgets.month = ?", month)
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var budgets []models.Budget
	err = q.Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Budget, 0)
	for _, budget := range budgets {
		var categories []models.BudgetCategory
		err = models.DB.Where(&models.BudgetCategory{BudgetID: budget.ID}).Order("category ASC").Find(&categories).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetListResponse{
				Error: &e,
			})
			return
		}

		data = append(data, newBudget(c, budget, categories))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create budget
// @Description	Creates a new budget with its category limits
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var editable BudgetEditable

	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget := editable.model(userID)
	err = models.DB.Create(&budget).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	categories := editable.categories()
	err = budget.ReplaceCategories(categories)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget, categories)
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Updates an existing budget. Only values to be updated need to be specified. When categories are submitted, they replace the budget's existing category limits completely.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var budget models.Budget
	err = models.DB.Where("user_id = ?", userID).First(&budget, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var update BudgetEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	// The categories are not a column on the budget, they are replaced
	// separately below
	replaceCategories := slices.Contains(updateFields, "Categories")
	if replaceCategories {
		updateFields = slices.DeleteFunc(updateFields, func(field any) bool {
			return field == "Categories"
		})
	}

	if len(updateFields) > 0 {
		err = models.DB.Model(&budget).Select("", updateFields...).Updates(update.model(userID)).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}
	}

	if replaceCategories {
		err = budget.ReplaceCategories(update.categories())
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}
	}

	budget, categories, err := getBudgetResource(userID, uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget, categories)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Delete budget
// @Description	Deletes a budget and its category limits
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
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

	var budget models.Budget
	err = models.DB.Where("user_id = ?", userID).First(&budget, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.BudgetCategory{BudgetID: budget.ID}).Delete(&models.BudgetCategory{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&budget).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Budget spending summary
// @Description	Returns how much of each category limit has been spent in the budget's month
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetUsageResponse
// @Failure		400	{object}	BudgetUsageResponse
// @Failure		404	{object}	BudgetUsageResponse
// @Failure		500	{object}	BudgetUsageResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/summary [get]
func GetBudgetSummary(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetUsageResponse{
			Error: &e,
		})
		return
	}

	var uri URIID
	err = c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetUsageResponse{
			Error: &e,
		})
		return
	}

	var budget models.Budget
	err = models.DB.Where("user_id = ?", userID).First(&budget, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetUsageResponse{
			Error: &e,
		})
		return
	}

	usage, err := budget.Usage()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetUsageResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetUsageResponse{Data: &usage})
}

// getBudgetResource loads a budget and its category limits.
func getBudgetResource(userID uuid.UUID, uri URIID) (models.Budget, []models.BudgetCategory, error) {
	var budget models.Budget
	err := models.DB.Where("user_id = ?", userID).First(&budget, uri.ID).Error
	if err != nil {
		return models.Budget{}, nil, err
	}

	var categories []models.BudgetCategory
	err = models.DB.Where(&models.BudgetCategory{BudgetID: budget.ID}).Order("category ASC").Find(&categories).Error
	if err != nil {
		return models.Budget{}, nil, err
	}

	return budget, categories, nil
}
