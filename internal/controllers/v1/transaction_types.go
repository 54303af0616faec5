package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	pd_uuid "github.com/paydown/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Date time.Time `json:"date" example:"2024-03-20T00:00:00Z"` // Date of the transaction. Defaults to the current date.

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount of the transaction

	Type        models.TransactionType `json:"type" example:"Expense"`                                          // Direction of the transaction
	Category    string                 `json:"category" example:"Groceries" default:""`                         // Category the transaction belongs to
	PaymentMode string                 `json:"paymentMode" example:"UPI" default:""`                            // How the transaction was paid
	WalletID    *uuid.UUID             `json:"walletId" example:"d8a3b9b4-f6c8-4c29-87ac-9a4e3f26b783"`         // ID of the wallet this transaction is booked in
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:      userID,
		Date:        editable.Date,
		Amount:      editable.Amount,
		Type:        editable.Type,
		Category:    editable.Category,
		PaymentMode: editable.PaymentMode,
		WalletID:    editable.WalletID,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:        model.Date,
			Amount:      model.Amount,
			Type:        model.Type,
			Category:    model.Category,
			PaymentMode: model.PaymentMode,
			WalletID:    model.WalletID,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	Date              time.Time              `form:"date" filterField:"false"`              // Exact date. Time is ignored.
	FromDate          time.Time              `form:"fromDate" filterField:"false"`          // From this date. Time is ignored.
	UntilDate         time.Time              `form:"untilDate" filterField:"false"`         // Until this date. Time is ignored.
	Type              models.TransactionType `form:"type" filterField:"false"`              // Direction of the transaction
	Category          string                 `form:"category"`                              // Category of the transaction
	PaymentMode       string                 `form:"paymentMode"`                           // How the transaction was paid
	WalletID          pd_uuid.UUID           `form:"wallet"`                                // ID of the wallet
	Amount            decimal.Decimal        `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal        `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal        `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Offset            uint                   `form:"offset" filterField:"false"`            // The offset of the first Transaction returned. Defaults to 0.
	Limit             int                    `form:"limit" filterField:"false"`             // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	// If the walletID is nil, use an actual nil, not uuid.Nil
	var wID *uuid.UUID
	if f.WalletID != pd_uuid.Nil {
		wID = &f.WalletID.UUID
	}

	// This does not set the date fields since they are
	// handled in the controller function
	return models.Transaction{
		Category:    f.Category,
		PaymentMode: f.PaymentMode,
		Amount:      f.Amount,
		WalletID:    wID,
	}
}
