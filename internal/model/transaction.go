package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the bank's classification of how a transaction moved.
type TransactionKind string

const (
	KindTransfer TransactionKind = "transfer"
	KindACH      TransactionKind = "ach"
	KindCard     TransactionKind = "card"
	KindWire     TransactionKind = "wire"
	KindCheck    TransactionKind = "check"
	KindOther    TransactionKind = "other"
)

// Transaction is a single raw bank-account transaction as collected
// upstream. Immutable once collected; the classifier returns copies
// with Category filled in rather than mutating in place.
type Transaction struct {
	ID           string
	Amount       decimal.Decimal // signed; positive = inflow
	Counterparty string
	PostedDate   time.Time
	CreatedAt    time.Time
	Kind         TransactionKind
	Description  string
	Category     string
}

// IsTransfer reports whether the transaction is an internal transfer.
// Transfers are excluded from revenue/expense math but kept for audit.
func (t Transaction) IsTransfer() bool {
	return t.Kind == KindTransfer
}

// Date resolves the transaction date: posted date when present,
// otherwise creation time. The zero time means no resolvable date.
func (t Transaction) Date() time.Time {
	if !t.PostedDate.IsZero() {
		return t.PostedDate
	}
	return t.CreatedAt
}

// HasDate reports whether the transaction has a resolvable date.
func (t Transaction) HasDate() bool {
	return !t.Date().IsZero()
}

// IsRevenue reports whether the transaction counts toward revenue.
func (t Transaction) IsRevenue() bool {
	return !t.IsTransfer() && t.Amount.IsPositive()
}

// IsExpense reports whether the transaction counts toward expenses.
func (t Transaction) IsExpense() bool {
	return !t.IsTransfer() && t.Amount.IsNegative()
}
