package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/paydown/backend/internal/controllers/v1"
	"github.com/paydown/backend/internal/models"
	"github.com/paydown/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRecurringTransaction(t *testing.T, userID uuid.UUID, editable v1.RecurringTransactionEditable, expectedStatus ...int) v1.RecurringTransactionResponse {
	if editable.Type == "" {
		editable.Type = models.TransactionTypeExpense
	}

	if editable.Amount.IsZero() {
		editable.Amount = decimal.NewFromFloat(1200)
	}

	if editable.Frequency == "" {
		editable.Frequency = models.FrequencyMonthly
	}

	if editable.StartDate.IsZero() {
		editable.StartDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.RecurringTransactionEditable{editable}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/recurring-transactions", body, asUser(userID))
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RecurringTransactionCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.RecurringTransactionResponse{}
}

// TestRecurringTransactionsOptions verifies that OPTIONS requests are handled
// correctly.
func (suite *TestSuiteStandard) TestRecurringTransactionsOptions() {
	tests := []struct {
		name   string
		id     string // path at the recurring transactions endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No recurring transaction with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Recurring transaction exists", createTestRecurringTransaction(suite.T(), suite.userID, v1.RecurringTransactionEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/recurring-transactions", tt.id)
			r := test.Request(t, http.MethodOptions, path, "", asUser(suite.userID))
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestRecurringTransactionsCreate verifies that new templates start out
// active with the schedule set to the start date.
func (suite *TestSuiteStandard) TestRecurringTransactionsCreate() {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	recurring := createTestRecurringTransaction(suite.T(), suite.userID, v1.RecurringTransactionEditable{
		Category:  "Rent",
		StartDate: start,
	})

	assert.True(suite.T(), recurring.Data.IsActive)
	assert.True(suite.T(), recurring.Data.NextRunDate.Equal(start), "Next run date must be initialized to the start date, is %s", recurring.Data.NextRunDate)
}

// TestRecurringTransactionsCreateInvalidFrequency verifies that unknown
// frequencies are rejected.
func (suite *TestSuiteStandard) TestRecurringTransactionsCreateInvalidFrequency() {
	body := []v1.RecurringTransactionEditable{{
		Type:      models.TransactionTypeExpense,
		Category:  "Rent",
		Amount:    decimal.NewFromFloat(1200),
		Frequency: "fortnightly",
		StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/recurring-transactions", body, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.RecurringTransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), *response.Data[0].Error, "frequency")
}

// TestRecurringTransactionsCreateWithoutStartDate verifies that templates
// without a start date are rejected. A zero start date would make the first
// scheduler run emit an entry for every occurrence since year 1.
func (suite *TestSuiteStandard) TestRecurringTransactionsCreateWithoutStartDate() {
	body := []v1.RecurringTransactionEditable{{
		Type:      models.TransactionTypeExpense,
		Category:  "Rent",
		Amount:    decimal.NewFromFloat(1200),
		Frequency: models.FrequencyDaily,
	}}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/recurring-transactions", body, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.RecurringTransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrRecurringStartDateMissing.Error(), *response.Data[0].Error)
}

// TestRecurringTransactionsUpdateStartDate verifies that updating the start
// date resets the schedule.
func (suite *TestSuiteStandard) TestRecurringTransactionsUpdateStartDate() {
	recurring := createTestRecurringTransaction(suite.T(), suite.userID, v1.RecurringTransactionEditable{
		StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})

	newStart := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	r := test.Request(suite.T(), http.MethodPatch, recurring.Data.Links.Self, map[string]any{
		"startDate": newStart.Format(time.RFC3339),
	}, asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.RecurringTransactionResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.NextRunDate.Equal(newStart), "Next run date must follow the new start date, is %s", updated.Data.NextRunDate)
}

// TestSchedulerRun verifies that due occurrences are materialized as ledger
// entries.
func (suite *TestSuiteStandard) TestSchedulerRun() {
	_ = createTestRecurringTransaction(suite.T(), suite.userID, v1.RecurringTransactionEditable{
		Category:  "Gym",
		Frequency: models.FrequencyDaily,
		Amount:    decimal.NewFromFloat(3),
		StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})

	// Another user's template must not be touched
	_ = createTestRecurringTransaction(suite.T(), uuid.New(), v1.RecurringTransactionEditable{
		Category:  "Gym",
		Frequency: models.FrequencyDaily,
		StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/recurring-transactions/run?runDate=2024-03-03", "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SchedulerRunResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 3, response.Data.CreatedTransactions)

	// The created entries are part of the ledger
	list := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?category=Gym", "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &list, http.StatusOK)

	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &list, &transactions)
	assert.Len(suite.T(), transactions.Data, 3)

	// A second run for the same date has nothing to do
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/recurring-transactions/run?runDate=2024-03-03", "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 0, response.Data.CreatedTransactions)
}

// TestSchedulerRunOptions verifies the OPTIONS response for the scheduler
// endpoint.
func (suite *TestSuiteStandard) TestSchedulerRunOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/recurring-transactions/run", "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, POST", r.Header().Get("allow"))
}

// TestRecurringTransactionsDelete verifies that templates can be deleted and
// generated transactions are kept.
func (suite *TestSuiteStandard) TestRecurringTransactionsDelete() {
	recurring := createTestRecurringTransaction(suite.T(), suite.userID, v1.RecurringTransactionEditable{
		Category:  "Netflix",
		Frequency: models.FrequencyMonthly,
		StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/recurring-transactions/run?runDate=2024-03-01", "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodDelete, recurring.Data.Links.Self, "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	list := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?category=Netflix", "", asUser(suite.userID))
	test.AssertHTTPStatus(suite.T(), &list, http.StatusOK)

	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &list, &transactions)
	assert.Len(suite.T(), transactions.Data, 1)
}
