package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// Transaction is a single ledger entry of a user, optionally scoped to a wallet.
type Transaction struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"index"`
	WalletID    *uuid.UUID      `json:"walletId"`
	Wallet      Wallet          `json:"-"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type" example:"Expense"`
	Category    string          `json:"category" example:"Groceries"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	PaymentMode string          `json:"paymentMode,omitempty" example:"UPI"`
}

// BeforeSave sets the timezone for the Date to UTC and normalizes strings.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Category = strings.TrimSpace(t.Category)
	t.PaymentMode = strings.TrimSpace(t.PaymentMode)

	return nil
}

// AfterSave validates the transaction after the database has accepted it.
func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return ErrTransactionTypeInvalid
	}

	if t.Amount.IsZero() {
		return ErrTransactionAmountZero
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}
