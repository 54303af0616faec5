package models_test

import (
	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	err := models.Connect("/does-not/exist/database.db")
	assert.Error(suite.T(), err)

	// Restore a working database for the teardown
	suite.SetupTest()
}

func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	var debt models.Debt
	err := models.DB.First(&debt, uuid.New()).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no debt matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestResourceNotFoundDepluralizesIes() {
	var category models.BudgetCategory
	err := models.DB.First(&category, uuid.New()).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no budget category matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	err := models.DB.Create(&models.Transaction{
		UserID:   uuid.New(),
		Type:     models.TransactionTypeIncome,
		Category: "Salary",
		Amount:   decimal.NewFromFloat(100),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrGeneral)

	// Restore a working database for the teardown
	suite.SetupTest()
}
