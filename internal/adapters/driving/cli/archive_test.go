package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveLsCmd_ListsMembers(t *testing.T) {
	archiveLsJSON = false
	out, err := execute(t, "archive", "ls", writePackage(t))
	require.NoError(t, err)
	assert.Contains(t, out, "collection.anki21")
	assert.Contains(t, out, "media")
	assert.Contains(t, out, "3 member(s)")
}

func TestArchiveCatCmd_WritesMember(t *testing.T) {
	out, err := execute(t, "archive", "cat", writePackage(t), "media")
	require.NoError(t, err)
	assert.Contains(t, out, `"map.png"`)
}

func TestArchiveCatCmd_UnknownMember(t *testing.T) {
	_, err := execute(t, "archive", "cat", writePackage(t), "missing")
	assert.Error(t, err)
}
