package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeStrings(t *testing.T) {
	enc, err := encodeStrings([]string{"climate", "policy"})
	require.NoError(t, err)
	assert.Equal(t, `["climate","policy"]`, enc)

	dec, err := decodeStrings([]byte(enc))
	require.NoError(t, err)
	assert.Equal(t, []string{"climate", "policy"}, dec)
}

func TestEncodeStrings_NilBecomesEmptyArray(t *testing.T) {
	enc, err := encodeStrings(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, enc)
}

func TestJSONString_QuotesForContainment(t *testing.T) {
	assert.Equal(t, `"climate"`, jsonString("climate"))
	// Queries with quotes must stay safe inside JSON_CONTAINS.
	assert.Equal(t, `"say \"hi\""`, jsonString(`say "hi"`))
}
