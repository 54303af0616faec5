package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerScope selects the ledger entries visible to an aggregation: one user,
// optionally narrowed to a wallet and a date window.
type LedgerScope struct {
	UserID   uuid.UUID
	WalletID *uuid.UUID
	From     time.Time // Zero value means unbounded
	Until    time.Time // Zero value means unbounded, the day itself is included
}

func (scope LedgerScope) query(db *gorm.DB) *gorm.DB {
	q := db.Model(&Transaction{}).Where("transactions.user_id = ?", scope.UserID)

	if scope.WalletID != nil {
		q = q.Where("transactions.wallet_id = ?", *scope.WalletID)
	}

	if !scope.From.IsZero() {
		q = q.Where("transactions.date >= date(?)", time.Date(scope.From.Year(), scope.From.Month(), scope.From.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !scope.Until.IsZero() {
		q = q.Where("transactions.date < date(?)", time.Date(scope.Until.Year(), scope.Until.Month(), scope.Until.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	return q
}

// TransactionsSum returns the sum of the amounts of all transactions of one
// type in scope.
func TransactionsSum(scope LedgerScope, transactionType TransactionType) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := scope.query(DB).
		Where("transactions.type = ?", transactionType).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s transactions failed: %w", transactionType, err)
	}

	return sum.Decimal, nil
}

// CategorySums returns the per-category sums of all transactions of one type
// in scope.
func CategorySums(scope LedgerScope, transactionType TransactionType) (map[string]decimal.Decimal, error) {
	rows, err := scope.query(DB).
		Where("transactions.type = ?", transactionType).
		Select("category, SUM(amount)").
		Group("category").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("summing %s transactions by category failed: %w", transactionType, err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var sum decimal.NullDecimal

		err := rows.Scan(&category, &sum)
		if err != nil {
			return nil, err
		}

		sums[category] = sum.Decimal
	}

	return sums, rows.Err()
}

// DebtInstallmentSum returns the sum of the configured installment amounts
// over a user's active debts.
//
// With mandatoryOnly set, flexible debts are excluded even when they have an
// installment configured: they are serviced opportunistically, not
// mandatorily. Without it, every debt with an installment counts. Both
// definitions are in use, do not unify them.
func DebtInstallmentSum(userID uuid.UUID, mandatoryOnly bool) (decimal.Decimal, error) {
	q := DB.Model(&Debt{}).
		Where("user_id = ?", userID).
		Where("status = ?", DebtStatusActive).
		Where("emi_amount IS NOT NULL")

	if mandatoryOnly {
		q = q.Where("is_flexible = ?", false)
	}

	var sum decimal.NullDecimal
	err := q.Select("SUM(emi_amount)").Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing debt installments failed: %w", err)
	}

	return sum.Decimal, nil
}

// ActiveDebts returns a user's active debts.
func ActiveDebts(userID uuid.UUID) ([]Debt, error) {
	var debts []Debt

	err := DB.
		Where(&Debt{UserID: userID, Status: DebtStatusActive}).
		Order("priority ASC, datetime(created_at) ASC").
		Find(&debts).Error
	if err != nil {
		return nil, err
	}

	return debts, nil
}
