package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Frequency is the interval at which a recurring transaction repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// RecurringTransaction is a template that periodically generates concrete
// ledger entries until an optional end date.
//
// NextRunDate is the only mutable scheduling state. It is initialized to
// StartDate and only ever advances forward in time, through Advance. Once it
// moves past EndDate the template becomes inactive permanently.
type RecurringTransaction struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"index"`
	WalletID    *uuid.UUID      `json:"walletId"`
	Wallet      Wallet          `json:"-"`
	Type        TransactionType `json:"type" example:"Expense"`
	Category    string          `json:"category" example:"Rent"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	PaymentMode string          `json:"paymentMode,omitempty" example:"Bank Transfer"`
	Frequency   Frequency       `json:"frequency" example:"monthly"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     *time.Time      `json:"endDate"`
	NextRunDate time.Time       `json:"nextRunDate"`
	IsActive    bool            `json:"isActive"`
}

// BeforeSave normalizes dates to UTC and initializes the cursor.
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	r.Category = strings.TrimSpace(r.Category)
	r.PaymentMode = strings.TrimSpace(r.PaymentMode)

	r.StartDate = r.StartDate.In(time.UTC)
	if r.EndDate != nil {
		e := r.EndDate.In(time.UTC)
		r.EndDate = &e
	}

	if r.NextRunDate.IsZero() {
		r.NextRunDate = r.StartDate
	} else {
		r.NextRunDate = r.NextRunDate.In(time.UTC)
	}

	return nil
}

// AfterSave validates the template.
func (r *RecurringTransaction) AfterSave(_ *gorm.DB) error {
	if !r.Amount.IsPositive() {
		return ErrRecurringAmountNotPositive
	}

	// A zero start date would make the scheduler materialize occurrences
	// since year 1
	if r.StartDate.IsZero() {
		return ErrRecurringStartDateMissing
	}

	if r.NextRunDate.Before(r.StartDate) {
		return ErrRecurringCursorBeforeStart
	}

	return nil
}

// AfterFind updates the dates to use UTC as timezone, not +0000.
func (r *RecurringTransaction) AfterFind(tx *gorm.DB) error {
	err := r.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	r.StartDate = r.StartDate.In(time.UTC)
	r.NextRunDate = r.NextRunDate.In(time.UTC)
	if r.EndDate != nil {
		e := r.EndDate.In(time.UTC)
		r.EndDate = &e
	}

	return nil
}

// nextRunDate computes the next occurrence after current for the frequency.
//
// For monthly templates the day of month is clamped to 28 so that the advance
// never produces an invalid date. An unknown frequency falls back to a 30 day
// advance instead of failing.
func nextRunDate(current time.Time, frequency Frequency) time.Time {
	switch frequency {
	case FrequencyDaily:
		return current.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case FrequencyMonthly:
		year, month := current.Year(), current.Month()
		if month == time.December {
			year++
			month = time.January
		} else {
			month++
		}

		day := current.Day()
		if day > 28 {
			day = 28
		}

		return time.Date(year, month, day, 0, 0, 0, 0, current.Location())
	case FrequencyYearly:
		return time.Date(current.Year()+1, current.Month(), current.Day(), 0, 0, 0, 0, current.Location())
	}

	return current.AddDate(0, 0, 30)
}

// Advance materializes all occurrences of the template that are due at asOf
// and moves the cursor past them.
//
// The returned transactions are not persisted, the caller decides how to
// write them. Calling Advance a second time with the same asOf returns no
// transactions since the cursor has already moved past it.
func (r *RecurringTransaction) Advance(asOf time.Time) []Transaction {
	var created []Transaction

	for r.IsActive && !r.NextRunDate.After(asOf) {
		// An occurrence past the end date is never materialized
		if r.EndDate != nil && r.NextRunDate.After(*r.EndDate) {
			r.IsActive = false
			break
		}

		created = append(created, Transaction{
			UserID:      r.UserID,
			WalletID:    r.WalletID,
			Date:        r.NextRunDate,
			Type:        r.Type,
			Category:    r.Category,
			Amount:      r.Amount,
			PaymentMode: r.PaymentMode,
		})

		r.NextRunDate = nextRunDate(r.NextRunDate, r.Frequency)

		// The just-emitted entry stands, but the template retires once the
		// cursor has moved past the end date
		if r.EndDate != nil && r.NextRunDate.After(*r.EndDate) {
			r.IsActive = false
		}
	}

	return created
}

// RunScheduler materializes all due recurring transactions of a user as of a
// date and returns the number of ledger entries created.
//
// Entries and advanced cursors are committed in a single database
// transaction: either all due entries are persisted together with the new
// cursor positions, or none are.
func RunScheduler(userID uuid.UUID, asOf time.Time) (int, error) {
	created := 0

	err := DB.Transaction(func(tx *gorm.DB) error {
		var due []RecurringTransaction
		err := tx.
			Where("user_id = ?", userID).
			Where("is_active = ?", true).
			Where("next_run_date <= ?", asOf).
			Find(&due).Error
		if err != nil {
			return err
		}

		for i := range due {
			entries := due[i].Advance(asOf)

			for e := range entries {
				err := tx.Create(&entries[e]).Error
				if err != nil {
					return err
				}
			}

			err := tx.Model(&due[i]).
				Select("NextRunDate", "IsActive").
				Updates(RecurringTransaction{
					NextRunDate: due[i].NextRunDate,
					IsActive:    due[i].IsActive,
				}).Error
			if err != nil {
				return err
			}

			created += len(entries)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}
