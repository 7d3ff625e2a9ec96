package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "report", Cmd.Use)
	format := Cmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "json", format.DefValue)
}

func seed(t *testing.T, svc *ledger.Service) {
	t.Helper()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.AddTransaction(context.Background(), ledger.TransactionForm{
			Type: models.TransactionIncome, Amount: "100", Category: "Salary", Date: start.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}
}

func TestReportCommand_JSON(t *testing.T) {
	c := common.UseTestContainer(t)
	seed(t, c.GetLedger())

	out, err := common.Execute(NewCommand(), "--recent", "2")
	require.NoError(t, err)

	var decoded struct {
		Summary struct {
			TotalIncome string `json:"totalIncome"`
		} `json:"summary"`
		RecentTransactions []json.RawMessage `json:"recentTransactions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "300", decoded.Summary.TotalIncome)
	assert.Len(t, decoded.RecentTransactions, 2)
}

func TestReportCommand_YAMLUsesConfiguredLimit(t *testing.T) {
	c := common.UseTestContainer(t)
	seed(t, c.GetLedger())

	out, err := common.Execute(NewCommand(), "--format", "yaml")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "summary")
	recent, ok := decoded["recentTransactions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, recent, 3)
}

func TestReportCommand_PDFFile(t *testing.T) {
	c := common.UseTestContainer(t)
	seed(t, c.GetLedger())
	path := filepath.Join(t.TempDir(), "reports", "ledger.pdf")

	out, err := common.Execute(NewCommand(), "-f", "pdf", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote pdf report to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestReportCommand_Errors(t *testing.T) {
	common.UseTestContainer(t)

	_, err := common.Execute(NewCommand(), "--format", "xml")
	require.Error(t, err)

	_, err = common.Execute(NewCommand(), "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output is required")

	_, err = common.Execute(NewCommand(), "--format", "json", "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
