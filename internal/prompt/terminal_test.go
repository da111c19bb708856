package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-ingest/internal/store"
)

var taxonomy = []store.Subcategory{
	{ID: 1, Name: "Eating Out", CategoryID: 1, CategoryName: "Food"},
	{ID: 2, Name: "Grocery", CategoryID: 1, CategoryName: "Food"},
}

func TestSelectSubcategoryRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("abc\n99\n2\n"), &out)

	id, err := term.SelectSubcategory(taxonomy)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	assert.Contains(t, out.String(), "valid integer")
	assert.Contains(t, out.String(), "id 99 not found")
	assert.Contains(t, out.String(), "Grocery")
}

func TestSelectSubcategoryEOF(t *testing.T) {
	term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})
	_, err := term.SelectSubcategory(taxonomy)
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("maybe\nY\n"), &out)

	ok, err := term.Confirm("Add to auto_match table?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "valid response")

	term = NewTerminal(strings.NewReader("n\n"), &bytes.Buffer{})
	ok, err = term.Confirm("Add to auto_match table?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadSubstringLowercases(t *testing.T) {
	term := NewTerminal(strings.NewReader("TIM HORTONS\n"), &bytes.Buffer{})
	sub, err := term.ReadSubstring("TIM HORTONS #1234")
	require.NoError(t, err)
	assert.Equal(t, "tim hortons", sub)
}

func TestAnnounce(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)
	term.Announce("Transaction on 2024-03-15 at COFFEE BAR for 4.50")
	assert.Contains(t, out.String(), "COFFEE BAR")
}
