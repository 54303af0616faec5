package models_test

import (
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDebtStatusDefaultsToActive() {
	debt := suite.createTestDebt(models.Debt{
		UserID:          uuid.New(),
		CreditorName:    "Girotto Bank",
		TotalAmount:     decimal.NewFromFloat(1000),
		RemainingAmount: decimal.NewFromFloat(1000),
	})

	assert.Equal(suite.T(), models.DebtStatusActive, debt.Status)
}

func (suite *TestSuiteStandard) TestDebtTotalAmountMustBePositive() {
	err := models.DB.Create(&models.Debt{
		UserID:       uuid.New(),
		CreditorName: "Girotto Bank",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrDebtAmountNotPositive)
}

func (suite *TestSuiteStandard) TestDebtRemainingAmountNotNegative() {
	err := models.DB.Create(&models.Debt{
		UserID:          uuid.New(),
		CreditorName:    "Girotto Bank",
		TotalAmount:     decimal.NewFromFloat(1000),
		RemainingAmount: decimal.NewFromFloat(-1),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrDebtRemainingNegative)
}
