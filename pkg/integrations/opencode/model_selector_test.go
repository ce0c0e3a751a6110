package opencodeintegration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelSelector_RoundTrip(t *testing.T) {
	selector := EncodeModelSelector("anthropic", "claude-sonnet-4-5")
	assert.Equal(t, "anthropic::claude-sonnet-4-5", selector)

	model, err := DecodeModelSelector(selector)
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, "anthropic", model.ProviderID)
	assert.Equal(t, "claude-sonnet-4-5", model.ModelID)
}

func TestDecodeModelSelector_EmptyMeansServerDefault(t *testing.T) {
	for _, selector := range []string{"", "   "} {
		model, err := DecodeModelSelector(selector)
		require.NoError(t, err)
		assert.Nil(t, model)
	}
}

func TestDecodeModelSelector_Invalid(t *testing.T) {
	for _, selector := range []string{
		"claude-sonnet-4-5",
		"::claude-sonnet-4-5",
		"anthropic::",
		"::",
	} {
		_, err := DecodeModelSelector(selector)
		assert.Error(t, err, "selector %q", selector)
	}
}

func TestDecodeModelSelector_TrimsWhitespace(t *testing.T) {
	model, err := DecodeModelSelector("  anthropic::claude-sonnet-4-5  ")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", model.ProviderID)
}
