package models

import (
	"fmt"
	"time"
)

// DateFormat is the wire and storage format for transaction dates.
const DateFormat = "2006-01-02"

// EntryType is the Income/Loss flag supplied when recording a transaction.
type EntryType int

const (
	// Loss marks an expense; the entered magnitude is stored negated.
	Loss EntryType = iota
	// Income marks an earning; the entered magnitude is stored as-is.
	Income
)

// ParseEntryType maps the submitted form value to an EntryType.
// "1" is Income and "0" is Loss, matching the type select on the
// add-transaction form.
func ParseEntryType(value string) (EntryType, error) {
	switch value {
	case "1":
		return Income, nil
	case "0":
		return Loss, nil
	}
	return 0, fmt.Errorf("unknown entry type %q", value)
}

func (t EntryType) String() string {
	if t == Income {
		return "Income"
	}
	return "Loss"
}

// FormValue returns the select-option value for the entry type.
func (t EntryType) FormValue() string {
	if t == Income {
		return "1"
	}
	return "0"
}

// Transaction represents a single line in a user's ledger.
type Transaction struct {
	// ID is the unique identifier for the transaction, assigned by the database.
	ID int64

	// OwnerID is the user this transaction belongs to. Immutable after creation.
	OwnerID int64

	// Name is the short label for the transaction (e.g. "Salary", "Rent").
	Name string

	// Amount is the signed amount: positive for income, negative for loss.
	Amount int64

	// Description is optional free text.
	Description string

	// Date is the calendar date of the transaction.
	Date time.Time

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64
}

// DateString returns the transaction date in YYYY-MM-DD form.
func (t *Transaction) DateString() string {
	return t.Date.Format(DateFormat)
}
