package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/model"
)

const mercuryCSV = `Date,Description,Amount,Kind,Counterparty,Note
01-15-2025,GITHUB.COM,-40.00,debitCardTransaction,GitHub,
01-20-2025,ACME CORP INVOICE 42,2500.00,ach,Acme Corp,january retainer
02-01-2025,TO SAVINGS,-10000.00,internalTransfer,Mercury Savings,
`

const genericCSV = `id,posted_date,created_at,amount,counterparty,kind,description,category
t1,2025-01-15,,-40.00,GitHub,card,GITHUB.COM,
t2,,2025-01-20T09:30:00Z,2500.00,Acme Corp,ach,invoice 42,
t3,2025-02-01,,-10000.00,,transfer,to savings,
`

func TestMercuryParser(t *testing.T) {
	txns, err := (&MercuryParser{}).Parse(strings.NewReader(mercuryCSV))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	github := txns[0]
	assert.True(t, github.Amount.Equal(decimal.NewFromInt(-40)))
	assert.Equal(t, model.KindCard, github.Kind)
	assert.Equal(t, "GitHub", github.Counterparty)
	assert.Equal(t, "mercury_20250115_GITHUBCOM", github.ID)

	invoice := txns[1]
	assert.Equal(t, model.KindACH, invoice.Kind)
	assert.Contains(t, invoice.Description, "january retainer")

	sweep := txns[2]
	assert.Equal(t, model.KindTransfer, sweep.Kind)
	assert.True(t, sweep.IsTransfer())
}

func TestMercuryParser_BadAmount(t *testing.T) {
	bad := "Date,Description,Amount,Kind,Counterparty,Note\n01-15-2025,X,not-a-number,ach,Y,\n"
	_, err := (&MercuryParser{}).Parse(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestMercuryParser_HeaderOnly(t *testing.T) {
	txns, err := (&MercuryParser{}).Parse(strings.NewReader("Date,Description,Amount,Kind,Counterparty,Note\n"))
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestGenericParser(t *testing.T) {
	txns, err := (&GenericParser{}).Parse(strings.NewReader(genericCSV))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "t1", txns[0].ID)
	assert.False(t, txns[0].PostedDate.IsZero())
	assert.True(t, txns[0].CreatedAt.IsZero())

	// Second row only has created_at; the date still resolves.
	assert.True(t, txns[1].PostedDate.IsZero())
	assert.True(t, txns[1].HasDate())

	assert.True(t, txns[2].IsTransfer())
}

func TestGenericParser_BadDate(t *testing.T) {
	bad := "id,posted_date,created_at,amount,counterparty,kind,description,category\nt1,15/01/2025,,-40.00,X,card,y,\n"
	_, err := (&GenericParser{}).Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("mercury"))
	assert.NotNil(t, r.Get("MERCURY"), "format lookup is case-insensitive")
	assert.NotNil(t, r.Get("generic"))
	assert.Nil(t, r.Get("chase"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&MercuryParser{})
	assert.Panics(t, func() { r.Register(&MercuryParser{}) })
}

func TestParseFile_UnknownFormat(t *testing.T) {
	_, err := DefaultRegistry().ParseFile("nowhere.csv", "pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ledger format")
}
