package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIDs(t *testing.T) {
	body := `{"hits":{"total":{"value":2},"hits":[{"_source":{"id":4}},{"_source":{"id":1}}]}}`
	ids, err := decodeIDs(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 1}, ids)
}

func TestDecodeIDs_Empty(t *testing.T) {
	ids, err := decodeIDs(strings.NewReader(`{"hits":{"hits":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDecodeIDs_Malformed(t *testing.T) {
	_, err := decodeIDs(strings.NewReader(`{"hits":`))
	require.Error(t, err)
}
