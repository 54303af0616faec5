package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/paydown/backend/internal/controllers/v1"
	"github.com/paydown/backend/internal/models"
	"github.com/paydown/backend/internal/types"
	"github.com/paydown/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBudget(t *testing.T, userID uuid.UUID, editable v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if editable.Month.IsZero() {
		editable.Month = types.NewMonth(2024, time.March)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", editable, asUser(userID))
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.BudgetResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

// TestBudgetsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestBudgetsOptions() {
	tests := []struct {
		name   string
		id     string // path at the budgets endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No budget with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Budget exists", createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/budgets", tt.id)
			r := test.Request(t, http.MethodOptions, path, "", asUser(suite.userID))
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestBudgetsCreate verifies that budgets are created with their category
// limits.
func (suite *TestSuiteStandard) TestBudgetsCreate() {
	budget := createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{
		Name:  "March essentials",
		Month: types.NewMonth(2024, time.March),
		Categories: []v1.BudgetCategoryEditable{
			{Category: "Groceries", LimitAmount: decimal.NewFromFloat(250)},
			{Category: "Transport", LimitAmount: decimal.NewFromFloat(100)},
		},
	})

	require.NotNil(suite.T(), budget.Data)
	assert.Equal(suite.T(), "March essentials", budget.Data.Name)
	assert.Len(suite.T(), budget.Data.Categories, 2)
}

// TestBudgetsCreateDuplicateMonth verifies that a user can only have one
// budget per month.
func (suite *TestSuiteStandard) TestBudgetsCreateDuplicateMonth() {
	_ = createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{Month: types.NewMonth(2024, time.March)})

	response := createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{Month: types.NewMonth(2024, time.March)}, http.StatusBadRequest)
	assert.Equal(suite.T(), models.ErrBudgetMonthNotUnique.Error(), *response.Error)

	// Another user can budget the same month
	_ = createTestBudget(suite.T(), uuid.New(), v1.BudgetEditable{Month: types.NewMonth(2024, time.March)})
}

// TestBudgetsGetFilter verifies that the query filters work.
func (suite *TestSuiteStandard) TestBudgetsGetFilter() {
	_ = createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{Name: "March", Month: types.NewMonth(2024, time.March)})
	_ = createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{Name: "April", Month: types.NewMonth(2024, time.April)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Name", "name=March", 1},
		{"Month", "month=2024-04", 1},
		{"No budget for month", "month=2023-01", 0},
		{"All budgets", "", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "", asUser(suite.userID))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestBudgetsUpdateCategories verifies that submitting categories replaces
// the whole set of limits.
func (suite *TestSuiteStandard) TestBudgetsUpdateCategories() {
	budget := createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{
		Categories: []v1.BudgetCategoryEditable{
			{Category: "Groceries", LimitAmount: decimal.NewFromFloat(250)},
		},
	})

	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"categories": []map[string]any{
			{"category": "Eating out", "limitAmount": "120"},
			{"category": "Transport", "limitAmount": "80"},
		},
	}, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	require.Len(suite.T(), updated.Data.Categories, 2)
	assert.Equal(suite.T(), "Eating out", updated.Data.Categories[0].Category)
}

// TestBudgetsSummary verifies the spending summary of a budget.
func (suite *TestSuiteStandard) TestBudgetsSummary() {
	budget := createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{
		Month: types.NewMonth(2024, time.March),
		Categories: []v1.BudgetCategoryEditable{
			{Category: "Groceries", LimitAmount: decimal.NewFromFloat(250)},
			{Category: "Transport", LimitAmount: decimal.NewFromFloat(100)},
		},
	})

	_ = createTestTransaction(suite.T(), suite.userID, v1.TransactionEditable{
		Category: "Groceries",
		Amount:   decimal.NewFromFloat(157.32),
		Date:     time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
	})

	// Outside the budget month, must not count
	_ = createTestTransaction(suite.T(), suite.userID, v1.TransactionEditable{
		Category: "Groceries",
		Amount:   decimal.NewFromFloat(99),
		Date:     time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Summary, "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetUsageResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	require.Len(suite.T(), response.Data.Categories, 2)

	groceries := response.Data.Categories[0]
	assert.Equal(suite.T(), "Groceries", groceries.Category)
	assert.True(suite.T(), groceries.Spent.Equal(decimal.NewFromFloat(157.32)))
	assert.True(suite.T(), groceries.Remaining.Equal(decimal.NewFromFloat(92.68)))
	assert.True(suite.T(), groceries.UtilizationPercent.Equal(decimal.NewFromFloat(62.93)))

	assert.True(suite.T(), response.Data.TotalLimit.Equal(decimal.NewFromFloat(350)))
	assert.True(suite.T(), response.Data.TotalSpent.Equal(decimal.NewFromFloat(157.32)))
}

// TestBudgetsDelete verifies that budgets are deleted together with their
// category limits.
func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := createTestBudget(suite.T(), suite.userID, v1.BudgetEditable{
		Categories: []v1.BudgetCategoryEditable{
			{Category: "Groceries", LimitAmount: decimal.NewFromFloat(250)},
		},
	})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
