package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLedger = `id,posted_date,created_at,amount,counterparty,kind,description,category
a1,2025-01-15,,2000.00,Acme Corp,ach,invoice,
a2,2025-02-15,,2000.00,Acme Corp,ach,invoice,
a3,2025-03-15,,2000.00,Acme Corp,ach,invoice,
p1,2025-01-31,,-9000.00,Gusto,ach,payroll run,
p2,2025-02-28,,-9000.00,Gusto,ach,payroll run,
p3,2025-03-31,,-9000.00,Gusto,ach,payroll run,
m1,2025-02-10,,-600.00,Google,card,google ads campaign,
s1,2025-03-01,,-10000.00,,transfer,to savings,
`

func writeLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte(testLedger), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "analyze",
		"--ledger", writeLedger(t),
		"--balance", "150000",
		"--window", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "2025-01")
	assert.Contains(t, out, "2025-03")
	assert.Contains(t, out, "MRR")
	assert.Contains(t, out, "$2000.00")
	assert.Contains(t, out, "Payroll & Benefits")
}

func TestAnalyzeCommand_LedgerRequired(t *testing.T) {
	_, err := run(t, "analyze")
	require.Error(t, err)
}

func TestAnalyzeCommand_MissingLedgerFile(t *testing.T) {
	_, err := run(t, "analyze", "--ledger", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestAnalyzeCommand_UnknownFormat(t *testing.T) {
	_, err := run(t, "analyze", "--ledger", writeLedger(t), "--format", "pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ledger format")
}

func TestAnalyzeCommand_BrokenConfigFallsBack(t *testing.T) {
	badCfg := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(badCfg, []byte("categories: ["), 0o644))

	out, err := run(t, "analyze",
		"--ledger", writeLedger(t),
		"--config", badCfg,
		"--balance", "150000",
		"--window", "3")
	require.NoError(t, err, "a broken config must not abort the analysis")
	assert.Contains(t, out, "MRR")
}

func TestCohortsCommand(t *testing.T) {
	out, err := run(t, "cohorts", "--ledger", writeLedger(t))
	require.NoError(t, err)

	assert.Contains(t, out, "COHORT")
	assert.Contains(t, out, "2025-01")
	assert.Contains(t, out, "Net revenue retention")
}

func TestCohortsCommand_EmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	header := "id,posted_date,created_at,amount,counterparty,kind,description,category\n"
	require.NoError(t, os.WriteFile(path, []byte(header), 0o644))

	out, err := run(t, "cohorts", "--ledger", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No customer-qualifying transactions")
}

func TestRunwayCommand(t *testing.T) {
	out, err := run(t, "runway",
		"--ledger", writeLedger(t),
		"--balance", "150000",
		"--window", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Base case")
	assert.Contains(t, out, "Status Quo")
	assert.Contains(t, out, "Cost Cutting")
}
