package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/shopspring/decimal"
)

type DebtEditable struct {
	CreditorName    string              `json:"creditorName" example:"Girotto Bank"`                             // Name of the creditor
	TotalAmount     decimal.Decimal     `json:"totalAmount" example:"10000" minimum:"0.00000001"`                // The full amount of the debt
	RemainingAmount decimal.Decimal     `json:"remainingAmount" example:"2000"`                                  // The amount still to be paid. Defaults to the total amount.
	EMIAmount       decimal.NullDecimal `json:"emiAmount" example:"1000"`                                        // The fixed monthly installment, if there is one
	InterestRate    decimal.NullDecimal `json:"interestRate" example:"4.9"`                                      // Interest rate in percent per year
	IsFlexible      bool                `json:"isFlexible" example:"false" default:"false"`                      // Is the debt paid down from discretionary cash?
	Priority        int                 `json:"priority" example:"1" default:"0"`                                // Payoff order of the debt, lower values are paid first
	Status          models.DebtStatus   `json:"status" example:"active"`                                         // Lifecycle state of the debt
}

// model returns the database resource for the API representation of the editable fields
func (editable DebtEditable) model(userID uuid.UUID) models.Debt {
	return models.Debt{
		UserID:          userID,
		CreditorName:    editable.CreditorName,
		TotalAmount:     editable.TotalAmount,
		RemainingAmount: editable.RemainingAmount,
		EMIAmount:       editable.EMIAmount,
		InterestRate:    editable.InterestRate,
		IsFlexible:      editable.IsFlexible,
		Priority:        editable.Priority,
		Status:          editable.Status,
	}
}

type DebtLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/debts/d430d7c3-d14c-4712-9336-ee56965a6673"` // The debt itself
}

// Debt is the representation of a Debt in API v1.
type Debt struct {
	models.DefaultModel
	DebtEditable
	Links DebtLinks `json:"links"`
}

// newDebt returns the API v1 representation of the resource
func newDebt(c *gin.Context, model models.Debt) Debt {
	url := c.GetString(string(models.DBContextURL))

	return Debt{
		DefaultModel: model.DefaultModel,
		DebtEditable: DebtEditable{
			CreditorName:    model.CreditorName,
			TotalAmount:     model.TotalAmount,
			RemainingAmount: model.RemainingAmount,
			EMIAmount:       model.EMIAmount,
			InterestRate:    model.InterestRate,
			IsFlexible:      model.IsFlexible,
			Priority:        model.Priority,
			Status:          model.Status,
		},
		Links: DebtLinks{
			Self: fmt.Sprintf("%s/v1/debts/%s", url, model.ID),
		},
	}
}

type DebtListResponse struct {
	Data       []Debt      `json:"data"`                                                          // List of debts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DebtCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []DebtResponse `json:"data"`                                                          // List of created Debts
}

func (d *DebtCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	d.Data = append(d.Data, DebtResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DebtResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this debt
	Data  *Debt   `json:"data"`                                                          // The Debt data, if creation was successful
}

type DebtQueryFilter struct {
	CreditorName string            `form:"creditorName"`               // Name of the creditor
	IsFlexible   bool              `form:"isFlexible"`                 // Is the debt paid down from discretionary cash?
	Status       models.DebtStatus `form:"status"`                     // Lifecycle state of the debt
	Offset       uint              `form:"offset" filterField:"false"` // The offset of the first Debt returned. Defaults to 0.
	Limit        int               `form:"limit" filterField:"false"`  // Maximum number of debts to return. Defaults to 50.
}

func (f DebtQueryFilter) model() models.Debt {
	return models.Debt{
		CreditorName: f.CreditorName,
		IsFlexible:   f.IsFlexible,
		Status:       f.Status,
	}
}
