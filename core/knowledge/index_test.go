package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexQuery(t *testing.T) {
	corpus, err := NewCorpus()
	require.NoError(t, err)

	idx, err := NewIndex(corpus)
	require.NoError(t, err)
	defer idx.Close()

	results, err := idx.Query("contrast ratio", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	found := false
	for _, crit := range results {
		if crit.RefID == "1.4.3" {
			found = true
		}
	}
	assert.True(t, found, "expected 1.4.3 among contrast results")
}

func TestIndexQueryDefaultLimit(t *testing.T) {
	corpus, err := NewCorpus()
	require.NoError(t, err)

	idx, err := NewIndex(corpus)
	require.NoError(t, err)
	defer idx.Close()

	results, err := idx.Query("text", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 10)
}

func TestNewIndexRequiresCorpus(t *testing.T) {
	_, err := NewIndex(nil)
	assert.Error(t, err)
}
