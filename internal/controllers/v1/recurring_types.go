package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/shopspring/decimal"
)

type RecurringTransactionEditable struct {
	Type        models.TransactionType `json:"type" example:"Expense"`                                  // Direction of the generated transactions
	Category    string                 `json:"category" example:"Rent" default:""`                      // Category of the generated transactions
	Amount      decimal.Decimal        `json:"amount" example:"1200" minimum:"0.00000001"`              // Amount of the generated transactions
	PaymentMode string                 `json:"paymentMode" example:"Bank Transfer" default:""`          // How the transactions are paid
	Frequency   models.Frequency       `json:"frequency" example:"monthly"`                             // How often a transaction is generated
	StartDate   time.Time              `json:"startDate" example:"2024-03-01T00:00:00Z"`                // Date of the first occurrence
	EndDate     *time.Time             `json:"endDate" example:"2024-12-01T00:00:00Z"`                  // Date after which no occurrences are generated anymore
	WalletID    *uuid.UUID             `json:"walletId" example:"d8a3b9b4-f6c8-4c29-87ac-9a4e3f26b783"` // ID of the wallet the transactions are booked in
}

// model returns the database resource for the API representation of the editable fields
func (editable RecurringTransactionEditable) model(userID uuid.UUID) models.RecurringTransaction {
	return models.RecurringTransaction{
		UserID:      userID,
		Type:        editable.Type,
		Category:    editable.Category,
		Amount:      editable.Amount,
		PaymentMode: editable.PaymentMode,
		Frequency:   editable.Frequency,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
		WalletID:    editable.WalletID,
	}
}

type RecurringTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring-transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The recurring transaction itself
}

// RecurringTransaction is the representation of a RecurringTransaction in API v1.
type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
	NextRunDate time.Time                 `json:"nextRunDate" example:"2024-04-01T00:00:00Z"` // Date of the next occurrence
	IsActive    bool                      `json:"isActive" example:"true"`                    // Is the template still generating transactions?
	Links       RecurringTransactionLinks `json:"links"`
}

// newRecurringTransaction returns the API v1 representation of the resource
func newRecurringTransaction(c *gin.Context, model models.RecurringTransaction) RecurringTransaction {
	url := c.GetString(string(models.DBContextURL))

	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			Type:        model.Type,
			Category:    model.Category,
			Amount:      model.Amount,
			PaymentMode: model.PaymentMode,
			Frequency:   model.Frequency,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
			WalletID:    model.WalletID,
		},
		NextRunDate: model.NextRunDate,
		IsActive:    model.IsActive,
		Links: RecurringTransactionLinks{
			Self: fmt.Sprintf("%s/v1/recurring-transactions/%s", url, model.ID),
		},
	}
}

type RecurringTransactionListResponse struct {
	Data       []RecurringTransaction `json:"data"`                                                          // List of recurring transactions
	Error      *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination            `json:"pagination"`                                                    // Pagination information
}

type RecurringTransactionCreateResponse struct {
	Error *string                        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RecurringTransactionResponse `json:"data"`                                                          // List of created recurring transactions
}

func (r *RecurringTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringTransactionResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringTransactionResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this recurring transaction
	Data  *RecurringTransaction `json:"data"`                                                          // The RecurringTransaction data, if creation was successful
}

// SchedulerRunResponse reports the outcome of a scheduler run.
type SchedulerRunResponse struct {
	Error *string             `json:"error" example:"the runDate parameter must be a valid timestamp"` // The error, if any occurred
	Data  *SchedulerRunResult `json:"data"`                                                            // The result of the scheduler run
}

type SchedulerRunResult struct {
	CreatedTransactions int `json:"createdTransactions" example:"3"` // Number of ledger entries created by this run
}

type RecurringTransactionQueryFilter struct {
	Type      models.TransactionType `form:"type"`                       // Direction of the generated transactions
	Category  string                 `form:"category"`                   // Category of the generated transactions
	Frequency models.Frequency       `form:"frequency"`                  // How often a transaction is generated
	IsActive  bool                   `form:"isActive"`                   // Is the template still generating transactions?
	Offset    uint                   `form:"offset" filterField:"false"` // The offset of the first RecurringTransaction returned. Defaults to 0.
	Limit     int                    `form:"limit" filterField:"false"`  // Maximum number of recurring transactions to return. Defaults to 50.
}

func (f RecurringTransactionQueryFilter) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		Type:      f.Type,
		Category:  f.Category,
		Frequency: f.Frequency,
		IsActive:  f.IsActive,
	}
}
