package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtStatus is the lifecycle state of a debt.
type DebtStatus string

const (
	DebtStatusActive DebtStatus = "active"
	DebtStatusClosed DebtStatus = "closed"
)

// Debt is an obligation of a user towards a creditor.
//
// A debt with a configured EMIAmount and IsFlexible set to false is serviced
// with that fixed installment every month. A flexible debt has no contractual
// installment and is paid down from discretionary cash in priority order,
// lower priority values first.
type Debt struct {
	DefaultModel
	UserID          uuid.UUID           `json:"userId" gorm:"index"`
	CreditorName    string              `json:"creditorName" example:"Girotto Bank"`
	TotalAmount     decimal.Decimal     `json:"totalAmount" gorm:"type:DECIMAL(20,8)"`
	RemainingAmount decimal.Decimal     `json:"remainingAmount" gorm:"type:DECIMAL(20,8)"`
	EMIAmount       decimal.NullDecimal `json:"emiAmount" gorm:"type:DECIMAL(20,8)"` // Null means there is no contractual installment
	InterestRate    decimal.NullDecimal `json:"interestRate" gorm:"type:DECIMAL(20,8)"`
	IsFlexible      bool                `json:"isFlexible" default:"false"`
	Priority        int                 `json:"priority" default:"0"` // Lower values are serviced first
	Status          DebtStatus          `json:"status" example:"active"`
}

// BeforeSave normalizes strings and defaults the status.
func (d *Debt) BeforeSave(_ *gorm.DB) error {
	d.CreditorName = strings.TrimSpace(d.CreditorName)

	if d.Status == "" {
		d.Status = DebtStatusActive
	}

	return nil
}

// AfterSave validates the debt amounts.
func (d *Debt) AfterSave(_ *gorm.DB) error {
	if !d.TotalAmount.IsPositive() {
		return ErrDebtAmountNotPositive
	}

	if d.RemainingAmount.IsNegative() {
		return ErrDebtRemainingNegative
	}

	return nil
}
