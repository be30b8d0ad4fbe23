package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// GenericParser parses the plain ledger-export format produced by the
// upstream collectors:
//
//	id,posted_date,created_at,amount,counterparty,kind,description,category
//
// Dates are RFC 3339 or plain 2006-01-02; either date column may be
// empty, matching the engine's date-resolution rules.
type GenericParser struct{}

const (
	genericNumFields  = 8
	genericColID      = 0
	genericColPosted  = 1
	genericColCreated = 2
	genericColAmount  = 3
	genericColCparty  = 4
	genericColKind    = 5
	genericColDesc    = 6
	genericColCat     = 7
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic ledger CSV and returns transactions.
func (p *GenericParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseGenericRow(rec []string) (model.Transaction, error) {
	posted, err := parseFlexibleDate(rec[genericColPosted])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing posted_date: %w", err)
	}
	created, err := parseFlexibleDate(rec[genericColCreated])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing created_at: %w", err)
	}

	amount, err := decimal.NewFromString(rec[genericColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[genericColAmount], err)
	}

	return model.Transaction{
		ID:           rec[genericColID],
		Amount:       amount,
		Counterparty: rec[genericColCparty],
		PostedDate:   posted,
		CreatedAt:    created,
		Kind:         model.TransactionKind(rec[genericColKind]),
		Description:  rec[genericColDesc],
		Category:     rec[genericColCat],
	}, nil
}

// parseFlexibleDate accepts RFC 3339, plain dates, or empty (zero time).
func parseFlexibleDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return t, nil
}
