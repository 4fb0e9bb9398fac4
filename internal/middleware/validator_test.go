package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/textlens/internal/domain/analysis"
)

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("a perfectly fine input"))
	assert.ErrorIs(t, ValidateText(""), domain.ErrBlankText)
	assert.ErrorIs(t, ValidateText("   \n\t"), domain.ErrBlankText)
	assert.ErrorIs(t, ValidateText(strings.Repeat("x", domain.MaxTextLen+1)), domain.ErrTextTooLong)
	assert.NoError(t, ValidateText(strings.Repeat("x", domain.MaxTextLen)))
}

func TestParseLimit(t *testing.T) {
	limit, err := ParseLimit("")
	require.NoError(t, err)
	assert.Equal(t, 50, limit)

	limit, err = ParseLimit("1")
	require.NoError(t, err)
	assert.Equal(t, 1, limit)

	limit, err = ParseLimit("100")
	require.NoError(t, err)
	assert.Equal(t, 100, limit)

	for _, raw := range []string{"0", "101", "-5", "abc", "1.5"} {
		_, err := ParseLimit(raw)
		require.Error(t, err, "raw %q", raw)
		assert.True(t, domain.IsValidation(err))
	}
}
