package template_test

import (
	"context"
	"testing"

	"fjacquet/misi/cmd/common"
	"fjacquet/misi/cmd/template"
	"fjacquet/misi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCommand_Metadata(t *testing.T) {
	assert.Equal(t, "template", template.Cmd.Use)

	names := []string{}
	for _, c := range template.Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "add", "edit", "delete", "use"}, names)
}

func TestTemplateCommand_ListSeeded(t *testing.T) {
	common.UseTestContainer(t)

	out, err := common.Execute(template.NewCommand(), "list")
	require.NoError(t, err)
	for _, tpl := range models.DefaultTemplates {
		assert.Contains(t, out, tpl.Description)
	}
}

func TestTemplateCommand_Lifecycle(t *testing.T) {
	c := common.UseTestContainer(t)
	ctx := context.Background()

	out, err := common.Execute(template.NewCommand(), "add", "--amount", "9.90", "--category", "Entertainment", "--description", "Streaming", "--stream", "Salary")
	require.NoError(t, err)
	assert.Contains(t, out, `Added template "Streaming"`)

	templates, err := c.GetLedger().ListTemplates(ctx)
	require.NoError(t, err)
	var id string
	for _, tpl := range templates {
		if tpl.Description == "Streaming" {
			id = tpl.ID
		}
	}
	require.NotEmpty(t, id)

	_, err = common.Execute(template.NewCommand(), "edit", id, "--amount", "11.90")
	require.NoError(t, err)

	out, err = common.Execute(template.NewCommand(), "use", id)
	require.NoError(t, err)
	assert.Contains(t, out, "11.90 USD")

	txns, err := c.GetLedger().ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("11.90")))
	assert.Equal(t, "Salary", txns[0].RevenueStream)

	_, err = common.Execute(template.NewCommand(), "delete", id)
	require.NoError(t, err)

	_, err = common.Execute(template.NewCommand(), "use", id)
	assert.ErrorContains(t, err, "not found")
}

func TestTemplateCommand_AddRejectsExpenseWithoutStream(t *testing.T) {
	common.UseTestContainer(t)

	_, err := common.Execute(template.NewCommand(), "add", "--amount", "5", "--category", "Shopping", "--description", "Socks")
	assert.ErrorContains(t, err, "revenue stream")
}
