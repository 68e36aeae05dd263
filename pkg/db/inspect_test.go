package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectorReadsSavedRow(t *testing.T) {
	s, path := setupFileStore(t)
	require.NoError(t, s.Save(sampleText()))

	// The store stays open: the inspector is a second, independent reader.
	in, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer in.Close()

	row, err := in.Row()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, int64(1), row.ID)
	assert.Equal(t, "你好世界", row.RawInput)
	assert.Contains(t, row.Segments, "nǐhǎo")
	assert.Contains(t, row.Segments, `"type":"word"`)
	assert.Contains(t, row.Segments, `"type":"plain"`)

	mode, err := in.JournalMode()
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

func TestInspectorSeesLatestSave(t *testing.T) {
	s, path := setupFileStore(t)
	in, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer in.Close()

	row, err := in.Row()
	require.NoError(t, err)
	assert.Nil(t, row)

	require.NoError(t, s.Save(sampleText()))
	row, err = in.Row()
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "你好世界", row.RawInput)
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}
