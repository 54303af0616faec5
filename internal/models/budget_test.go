package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/paydown/backend/internal/models"
	"github.com/paydown/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBudgetMonthUnique() {
	userID := uuid.New()

	suite.createTestBudget(models.Budget{UserID: userID, Name: "March", Month: types.NewMonth(2024, time.March)})

	err := models.DB.Create(&models.Budget{UserID: userID, Name: "March again", Month: types.NewMonth(2024, time.March)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetMonthNotUnique)

	// The same month for another user is fine
	err = models.DB.Create(&models.Budget{UserID: uuid.New(), Name: "March", Month: types.NewMonth(2024, time.March)}).Error
	assert.NoError(suite.T(), err)
}

func (suite *TestSuiteStandard) TestBudgetCategoryUnique() {
	budget := suite.createTestBudget(models.Budget{UserID: uuid.New(), Name: "March", Month: types.NewMonth(2024, time.March)})

	suite.createTestBudgetCategory(models.BudgetCategory{BudgetID: budget.ID, Category: "Groceries", LimitAmount: decimal.NewFromFloat(250)})

	err := models.DB.Create(&models.BudgetCategory{BudgetID: budget.ID, Category: "Groceries", LimitAmount: decimal.NewFromFloat(100)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetCategoryNotUnique)
}

func (suite *TestSuiteStandard) TestBudgetUsage() {
	userID := uuid.New()
	budget := suite.createTestBudget(models.Budget{UserID: userID, Name: "March essentials", Month: types.NewMonth(2024, time.March)})

	suite.createTestBudgetCategory(models.BudgetCategory{BudgetID: budget.ID, Category: "Groceries", LimitAmount: decimal.NewFromFloat(250)})
	suite.createTestBudgetCategory(models.BudgetCategory{BudgetID: budget.ID, Category: "Transport", LimitAmount: decimal.NewFromFloat(100)})

	suite.createTestTransaction(models.Transaction{UserID: userID, Type: models.TransactionTypeExpense, Category: "Groceries", Amount: decimal.NewFromFloat(117.32), Date: date(2024, time.March, 5)})
	suite.createTestTransaction(models.Transaction{UserID: userID, Type: models.TransactionTypeExpense, Category: "Groceries", Amount: decimal.NewFromFloat(40), Date: date(2024, time.March, 31)})

	// Outside the budget month and outside the budgeted categories
	suite.createTestTransaction(models.Transaction{UserID: userID, Type: models.TransactionTypeExpense, Category: "Groceries", Amount: decimal.NewFromFloat(500), Date: date(2024, time.April, 1)})
	suite.createTestTransaction(models.Transaction{UserID: userID, Type: models.TransactionTypeExpense, Category: "Hobby", Amount: decimal.NewFromFloat(99), Date: date(2024, time.March, 10)})

	usage, err := budget.Usage()
	require.NoError(suite.T(), err)

	require.Len(suite.T(), usage.Categories, 2)

	groceries := usage.Categories[0]
	assert.Equal(suite.T(), "Groceries", groceries.Category)
	assert.True(suite.T(), groceries.Spent.Equal(decimal.NewFromFloat(157.32)), "got %s", groceries.Spent)
	assert.True(suite.T(), groceries.Remaining.Equal(decimal.NewFromFloat(92.68)), "got %s", groceries.Remaining)
	assert.True(suite.T(), groceries.UtilizationPercent.Equal(decimal.NewFromFloat(62.93)), "got %s", groceries.UtilizationPercent)

	transport := usage.Categories[1]
	assert.True(suite.T(), transport.Spent.IsZero())
	assert.True(suite.T(), transport.UtilizationPercent.IsZero())

	assert.True(suite.T(), usage.TotalLimit.Equal(decimal.NewFromFloat(350)), "got %s", usage.TotalLimit)
	assert.True(suite.T(), usage.TotalSpent.Equal(decimal.NewFromFloat(157.32)), "got %s", usage.TotalSpent)
	assert.True(suite.T(), usage.TotalRemaining.Equal(decimal.NewFromFloat(192.68)), "got %s", usage.TotalRemaining)
}

func (suite *TestSuiteStandard) TestBudgetReplaceCategories() {
	budget := suite.createTestBudget(models.Budget{UserID: uuid.New(), Name: "March", Month: types.NewMonth(2024, time.March)})
	suite.createTestBudgetCategory(models.BudgetCategory{BudgetID: budget.ID, Category: "Groceries", LimitAmount: decimal.NewFromFloat(250)})

	err := budget.ReplaceCategories([]models.BudgetCategory{
		{Category: "Rent", LimitAmount: decimal.NewFromFloat(1200)},
		{Category: "Groceries", LimitAmount: decimal.NewFromFloat(300)},
	})
	require.NoError(suite.T(), err)

	var categories []models.BudgetCategory
	require.NoError(suite.T(), models.DB.Where(&models.BudgetCategory{BudgetID: budget.ID}).Order("category ASC").Find(&categories).Error)

	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), "Groceries", categories[0].Category)
	assert.True(suite.T(), categories[0].LimitAmount.Equal(decimal.NewFromFloat(300)), "got %s", categories[0].LimitAmount)
	assert.Equal(suite.T(), "Rent", categories[1].Category)
}
