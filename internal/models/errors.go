package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors raised by model hooks
var (
	ErrTransactionTypeInvalid     = errors.New("the transaction type must be Income or Expense")
	ErrTransactionAmountZero      = errors.New("transaction amounts must not be zero")
	ErrDebtAmountNotPositive      = errors.New("the total amount of a debt must be larger than zero")
	ErrDebtRemainingNegative      = errors.New("the remaining amount of a debt cannot be negative")
	ErrRecurringAmountNotPositive = errors.New("recurring transaction amounts must be larger than zero")
	ErrRecurringStartDateMissing  = errors.New("recurring transactions must have a start date")
	ErrRecurringCursorBeforeStart = errors.New("the next run date cannot be before the start date")
	ErrWalletNotOwner             = errors.New("only the wallet owner is allowed to do this")
)

// Constraint violations mapped from database errors
var (
	ErrBudgetMonthNotUnique    = errors.New("you already have a budget for this month")
	ErrBudgetCategoryNotUnique = errors.New("a budget can only have one limit per category")
	ErrWalletMemberNotUnique   = errors.New("this user is already a member of the wallet")
)
