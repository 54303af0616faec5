package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/paydown/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// Budget is a set of monthly spending limits per category for one user.
type Budget struct {
	DefaultModel
	UserID     uuid.UUID        `json:"userId" gorm:"uniqueIndex:budget_user_month"`
	Name       string           `json:"name" example:"March essentials"`
	Month      types.Month      `json:"month" gorm:"uniqueIndex:budget_user_month"`
	Categories []BudgetCategory `json:"-"`
}

// BudgetCategory is one spending limit within a budget.
type BudgetCategory struct {
	DefaultModel
	BudgetID    uuid.UUID       `json:"budgetId" gorm:"uniqueIndex:budget_category_name"`
	Budget      Budget          `json:"-"`
	Category    string          `json:"category" gorm:"uniqueIndex:budget_category_name" example:"Groceries"`
	LimitAmount decimal.Decimal `json:"limitAmount" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave normalizes the budget name.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	return nil
}

// BeforeSave normalizes the category name.
func (b *BudgetCategory) BeforeSave(_ *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)
	return nil
}

// CategoryUsage is the spending state of one budget category in its month.
type CategoryUsage struct {
	Category           string          `json:"category" example:"Groceries"`
	LimitAmount        decimal.Decimal `json:"limitAmount" example:"250"`
	Spent              decimal.Decimal `json:"spent" example:"117.32"`
	Remaining          decimal.Decimal `json:"remaining" example:"132.68"`
	UtilizationPercent decimal.Decimal `json:"utilizationPercent" example:"46.93"`
}

// BudgetUsage aggregates the spending state over all categories of a budget.
type BudgetUsage struct {
	Categories     []CategoryUsage `json:"categories"`
	TotalLimit     decimal.Decimal `json:"totalLimit" example:"1000"`
	TotalSpent     decimal.Decimal `json:"totalSpent" example:"420.55"`
	TotalRemaining decimal.Decimal `json:"totalRemaining" example:"579.45"`
}

// Usage computes how much of each category limit has been spent in the
// budget's month. Spending is summed over the user's expense entries for the
// category, regardless of wallet.
func (b Budget) Usage() (BudgetUsage, error) {
	var categories []BudgetCategory
	err := DB.Where(&BudgetCategory{BudgetID: b.ID}).Order("category ASC").Find(&categories).Error
	if err != nil {
		return BudgetUsage{}, err
	}

	spentByCategory, err := CategorySums(LedgerScope{
		UserID: b.UserID,
		From:   b.Month.FirstDay(),
		Until:  b.Month.LastDay(),
	}, TransactionTypeExpense)
	if err != nil {
		return BudgetUsage{}, err
	}

	usage := BudgetUsage{
		Categories: make([]CategoryUsage, 0, len(categories)),
	}

	for _, category := range categories {
		spent := spentByCategory[category.Category]

		utilization := decimal.Zero
		if category.LimitAmount.IsPositive() {
			utilization = spent.Div(category.LimitAmount).Mul(hundred).Round(2)
		}

		usage.Categories = append(usage.Categories, CategoryUsage{
			Category:           category.Category,
			LimitAmount:        category.LimitAmount,
			Spent:              spent,
			Remaining:          category.LimitAmount.Sub(spent),
			UtilizationPercent: utilization,
		})

		usage.TotalLimit = usage.TotalLimit.Add(category.LimitAmount)
		usage.TotalSpent = usage.TotalSpent.Add(spent)
	}

	usage.TotalRemaining = usage.TotalLimit.Sub(usage.TotalSpent)

	return usage, nil
}

// ReplaceCategories swaps the budget's category limits for a new set in a
// single database transaction.
func (b *Budget) ReplaceCategories(categories []BudgetCategory) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// The unique index on (budget_id, category) covers soft deleted rows,
		// so the old set has to go for real before the new one comes in
		err := tx.Unscoped().Where(&BudgetCategory{BudgetID: b.ID}).Delete(&BudgetCategory{}).Error
		if err != nil {
			return err
		}

		for i := range categories {
			categories[i].BudgetID = b.ID
			categories[i].ID = uuid.Nil

			err := tx.Create(&categories[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
