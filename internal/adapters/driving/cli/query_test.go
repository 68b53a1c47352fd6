package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-labs/mnemo-cli/internal/core/domain"
)

func TestQueryCmd_RequiresTwoArgs(t *testing.T) {
	_, err := execute(t, "query", "only-one")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestQueryCmd_PrintsRows(t *testing.T) {
	queryJSON = false
	out, err := execute(t, "query", writeCollection(t), "SELECT id, did FROM cards ORDER BY id;")
	require.NoError(t, err)
	assert.Contains(t, out, "id\tdid")
	assert.Contains(t, out, "1\t10")
	assert.Contains(t, out, "2 row(s)")
}

func TestQueryCmd_BadSQL(t *testing.T) {
	_, err := execute(t, "query", writeCollection(t), "SELECT * FROM nope;")
	assert.ErrorIs(t, err, domain.ErrQuery)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NULL", formatValue(nil))
	assert.Equal(t, "blob", formatValue([]byte("blob")))
	assert.Equal(t, "text", formatValue("text"))
	assert.Equal(t, "42", formatValue(int64(42)))
}
