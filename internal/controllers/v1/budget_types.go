package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/paydown/backend/internal/types"
	"github.com/shopspring/decimal"
)

type BudgetCategoryEditable struct {
	Category    string          `json:"category" example:"Groceries"`                 // Category the limit applies to
	LimitAmount decimal.Decimal `json:"limitAmount" example:"250" minimum:"0.000001"` // Spending limit for the category
}

func (editable BudgetCategoryEditable) model() models.BudgetCategory {
	return models.BudgetCategory{
		Category:    editable.Category,
		LimitAmount: editable.LimitAmount,
	}
}

type BudgetEditable struct {
	Name       string                   `json:"name" example:"March essentials" default:""` // Name of the budget
	Month      types.Month              `json:"month" example:"2024-03-01T00:00:00Z"`       // The month the budget is for
	Categories []BudgetCategoryEditable `json:"categories"`                                 // The category limits of the budget
}

// model returns the database resource for the API representation of the editable fields
func (editable BudgetEditable) model(userID uuid.UUID) models.Budget {
	return models.Budget{
		UserID: userID,
		Name:   editable.Name,
		Month:  editable.Month,
	}
}

func (editable BudgetEditable) categories() []models.BudgetCategory {
	categories := make([]models.BudgetCategory, 0, len(editable.Categories))
	for _, category := range editable.Categories {
		categories = append(categories, category.model())
	}

	return categories
}

type BudgetLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/budgets/d430d7c3-d14c-4712-9336-ee56965a6673"`         // The budget itself
	Summary string `json:"summary" example:"https://example.com/api/v1/budgets/d430d7c3-d14c-4712-9336-ee56965a6673/summary"` // The spending summary for the budget
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget, categories []models.BudgetCategory) Budget {
	url := c.GetString(string(models.DBContextURL))

	editableCategories := make([]BudgetCategoryEditable, 0, len(categories))
	for _, category := range categories {
		editableCategories = append(editableCategories, BudgetCategoryEditable{
			Category:    category.Category,
			LimitAmount: category.LimitAmount,
		})
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:       model.Name,
			Month:      model.Month,
			Categories: editableCategories,
		},
		Links: BudgetLinks{
			Self:    fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Summary: fmt.Sprintf("%s/v1/budgets/%s/summary", url, model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                                          // The Budget data, if creation was successful
}

type BudgetUsageResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *models.BudgetUsage `json:"data"`                                                          // The spending state of the budget
}

type BudgetQueryFilter struct {
	Name   string `form:"name"`                       // Name of the budget
	Month  string `form:"month" filterField:"false"`  // Month of the budget in YYYY-MM format
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		Name: f.Name,
	}
}
