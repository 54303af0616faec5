package v1

import (
	"errors"
	"net/http"

	"github.com/paydown/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrWalletNotOwner) {
		return http.StatusForbidden
	}

	if errors.Is(err, errUserIDRequired) || errors.Is(err, errUserIDInvalid) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// Authentication errors
var (
	errUserIDRequired = errors.New("the X-User-ID header must be set")
	errUserIDInvalid  = errors.New("the X-User-ID header must be a valid UUID")
)

// Transaction errors
var (
	errTransactionTypeInvalid = errors.New("the specified transaction type is invalid")
)

// Recurring transaction errors
var (
	errFrequencyInvalid = errors.New("the specified frequency is invalid")
)

// Planner errors
var (
	errTargetAmountNotPositive = errors.New("the targetAmount parameter must be larger than zero")
	errReservedCashNegative    = errors.New("the reservedCash parameter cannot be negative")
)

// Wallet errors
var (
	errMemberIsOwner = errors.New("the wallet owner cannot be added or removed as a member")
)
