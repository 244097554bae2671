package pathcomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.ExpandTilde)
	assert.True(t, opts.AllowDot)
	assert.False(t, opts.IgnoreCase)
	assert.False(t, opts.MapCase)
	assert.False(t, opts.ExpandPath)
	assert.False(t, opts.DigLeaf)
	assert.Equal(t, 0, opts.Fuzzy)
}

func TestLoadOptions(t *testing.T) {
	t.Run("empty input keeps defaults", func(t *testing.T) {
		opts, err := LoadOptions(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultOptions(), opts)
	})

	t.Run("values override defaults", func(t *testing.T) {
		opts, err := LoadOptions([]byte("ignoreCase: true\nfuzzy: 2\nallowDot: false\n"))
		require.NoError(t, err)

		assert.True(t, opts.IgnoreCase)
		assert.Equal(t, 2, opts.Fuzzy)
		assert.False(t, opts.AllowDot)
		// Untouched fields keep their defaults.
		assert.True(t, opts.ExpandTilde)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		_, err := LoadOptions([]byte("fuzzy: [broken"))
		assert.Error(t, err)
	})

	t.Run("negative fuzzy level is an error", func(t *testing.T) {
		_, err := LoadOptions([]byte("fuzzy: -1"))
		assert.Error(t, err)
	})
}
