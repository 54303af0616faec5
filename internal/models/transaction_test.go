package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionInvalidType() {
	err := models.DB.Create(&models.Transaction{
		UserID:   uuid.New(),
		Type:     "Transfer",
		Category: "Savings",
		Amount:   decimal.NewFromFloat(100),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestTransactionZeroAmount() {
	err := models.DB.Create(&models.Transaction{
		UserID:   uuid.New(),
		Type:     models.TransactionTypeExpense,
		Category: "Groceries",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrTransactionAmountZero)
}

func (suite *TestSuiteStandard) TestTransactionDateDefaultsToNow() {
	transaction := suite.createTestTransaction(models.Transaction{
		UserID:   uuid.New(),
		Type:     models.TransactionTypeIncome,
		Category: "Salary",
		Amount:   decimal.NewFromFloat(3000),
	})

	assert.False(suite.T(), transaction.Date.IsZero())
	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionTrimsWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		UserID:      uuid.New(),
		Type:        models.TransactionTypeExpense,
		Category:    " Groceries ",
		PaymentMode: " UPI ",
		Amount:      decimal.NewFromFloat(42),
	})

	assert.Equal(suite.T(), "Groceries", transaction.Category)
	assert.Equal(suite.T(), "UPI", transaction.PaymentMode)
}
