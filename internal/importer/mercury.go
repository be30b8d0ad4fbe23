package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// MercuryParser parses Mercury checking-account CSV exports.
type MercuryParser struct{}

const (
	mercuryDateFormat = "01-02-2006"
	mercuryNumFields  = 6
	mercuryColDate    = 0
	mercuryColDesc    = 1
	mercuryColAmount  = 2
	mercuryColKind    = 3
	mercuryColCparty  = 4
	mercuryColNote    = 5
)

// Format returns the parser name.
func (p *MercuryParser) Format() string { return "mercury" }

// Parse reads a Mercury CSV and returns transactions.
func (p *MercuryParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = mercuryNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mercury CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := parseMercuryRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseMercuryRow(rec []string) (model.Transaction, error) {
	date, err := time.Parse(mercuryDateFormat, rec[mercuryColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[mercuryColDate], err)
	}

	amount, err := decimal.NewFromString(rec[mercuryColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[mercuryColAmount], err)
	}

	desc := rec[mercuryColDesc]
	return model.Transaction{
		ID:           makeRef("mercury", date, desc),
		Amount:       amount,
		Counterparty: rec[mercuryColCparty],
		PostedDate:   date,
		Kind:         mercuryKind(rec[mercuryColKind]),
		Description:  strings.TrimSpace(desc + " " + rec[mercuryColNote]),
	}, nil
}

// mercuryKind maps Mercury's transaction kinds onto ours.
func mercuryKind(kind string) model.TransactionKind {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "internaltransfer", "transfer", "treasurytransfer":
		return model.KindTransfer
	case "externaltransfer", "ach", "achpayment":
		return model.KindACH
	case "debitcardtransaction", "creditcardtransaction", "card":
		return model.KindCard
	case "domesticwire", "internationalwire", "wire":
		return model.KindWire
	case "check", "checkdeposit":
		return model.KindCheck
	default:
		return model.KindOther
	}
}

// makeRef creates a stable ID like mercury_20250103_GITHUB.
func makeRef(source string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s", source, date.Format("20060102"), prefix)
}
