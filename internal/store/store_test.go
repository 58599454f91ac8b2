package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `header:
  name: Jane Doe
  role: Backend Engineer
profile: A short paragraph.
experience:
  - company: Acme Corp
    period: 2021 — present
    highlight: Led the billing migration
    bullets:
      - Designed the ledger service.
  - company: Widget BV
    period: 2017 — 2021
`

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv_data.yaml")
	s := NewFileStore(path)

	require.NoError(t, s.SaveText(sampleDoc))
	got, err := s.LoadText()
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, got)

	// Saves are whole-file overwrites.
	require.NoError(t, s.SaveText("header:\n  name: X\n  role: Y\n"))
	got, err = s.LoadText()
	require.NoError(t, err)
	assert.NotContains(t, got, "Jane Doe")
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := s.LoadText()
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse(t *testing.T) {
	m, err := Parse(sampleDoc)
	require.NoError(t, err)
	assert.Contains(t, m, "header")
	assert.Contains(t, m, "experience")

	_, err = Parse("are: [unclosed")
	require.Error(t, err)

	_, err = Parse("")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	rec, err := Decode(sampleDoc)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.Header.Name)
	require.Len(t, rec.Experience, 2)

	// The highlight key is present on the first job and absent on the
	// second; the pointer carries that distinction through.
	require.NotNil(t, rec.Experience[0].Highlight)
	assert.Equal(t, "Led the billing migration", *rec.Experience[0].Highlight)
	assert.Nil(t, rec.Experience[1].Highlight)
}

func TestDecodeDefaults(t *testing.T) {
	rec, err := Decode("header:\n  name: X\n  role: Y\n")
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", rec.OutputFilename())
	assert.Equal(t, "X", rec.Title())
}
