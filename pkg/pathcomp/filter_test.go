package pathcomp

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupFilterDirectory creates a directory with one entry per mode class:
// a writable file, a read-only file, an executable script, and a directory.
func setupFilterDirectory(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "pathcomp_filter")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "file.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "readonly.txt"), []byte("x"), 0444))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "script.sh"), []byte("x"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "subdir"), 0755))

	return tmpDir
}

func TestModeFilter_Construction(t *testing.T) {
	valid := []string{"f", "-f", "d", "rwx", "wf|wd", "f | d", ""}
	for _, pattern := range valid {
		_, err := ModeFilter(pattern)
		assert.NoError(t, err, "pattern %q should compile", pattern)
	}

	invalid := []string{"z", "fz", "f|q", "w f"}
	for _, pattern := range invalid {
		_, err := ModeFilter(pattern)
		assert.Error(t, err, "pattern %q should be a configuration error", pattern)
	}
}

func TestModeFilter_Match(t *testing.T) {
	tmpDir := setupFilterDirectory(t)

	path := func(name string) string { return filepath.Join(tmpDir, name) }

	tests := []struct {
		pattern  string
		accepted []string
		rejected []string
	}{
		{
			pattern:  "f",
			accepted: []string{"file.txt", "readonly.txt", "script.sh"},
			rejected: []string{"subdir"},
		},
		{
			pattern:  "-f",
			accepted: []string{"subdir"},
			rejected: []string{"file.txt", "script.sh"},
		},
		{
			pattern:  "d",
			accepted: []string{"subdir"},
			rejected: []string{"file.txt"},
		},
		{
			pattern:  "wf",
			accepted: []string{"file.txt", "script.sh"},
			rejected: []string{"readonly.txt", "subdir"},
		},
		{
			pattern:  "xf",
			accepted: []string{"script.sh"},
			rejected: []string{"file.txt", "readonly.txt", "subdir"},
		},
		{
			pattern:  "wf|wd",
			accepted: []string{"file.txt", "script.sh", "subdir"},
			rejected: []string{"readonly.txt"},
		},
		{
			// The negation toggle persists across the | boundary, so the
			// second group tests "not a file" as well.
			pattern:  "-f|f",
			accepted: []string{"subdir"},
			rejected: []string{"file.txt", "script.sh"},
		},
		{
			// A second - flips negation back off.
			pattern:  "-f|-f",
			accepted: []string{"subdir", "file.txt"},
			rejected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run("pattern "+tt.pattern, func(t *testing.T) {
			filter, err := ModeFilter(tt.pattern)
			require.NoError(t, err)

			for _, name := range tt.accepted {
				assert.True(t, filter.match(path(name)),
					"pattern %q should accept %q", tt.pattern, name)
			}
			for _, name := range tt.rejected {
				assert.False(t, filter.match(path(name)),
					"pattern %q should reject %q", tt.pattern, name)
			}
		})
	}

	t.Run("stat failure rejects entry", func(t *testing.T) {
		filter, err := ModeFilter("f")
		require.NoError(t, err)
		assert.False(t, filter.match(path("does_not_exist")))
	})
}

func TestModeFilter_Completion(t *testing.T) {
	tmpDir := setupFilterDirectory(t)

	filter, err := ModeFilter("f")
	require.NoError(t, err)

	c := New(zap.NewNop())
	results := c.Complete(Request{Word: "", Dir: tmpDir, Options: DefaultOptions(), Filter: filter})
	assert.ElementsMatch(t, []string{"file.txt", "readonly.txt", "script.sh"}, results)
}

func TestRegexFilter(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "pathcomp_regex")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "foo.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bar.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "foo"), 0755))

	filter := RegexFilter(regexp.MustCompile(`^foo`))
	c := New(zap.NewNop())

	t.Run("directories pass unconditionally, files need a name match", func(t *testing.T) {
		results := c.Complete(Request{Word: "f", Dir: tmpDir, Options: DefaultOptions(), Filter: filter})
		assert.ElementsMatch(t, []string{"foo", "foo.txt"}, results)
	})

	t.Run("non-matching file is rejected", func(t *testing.T) {
		results := c.Complete(Request{Word: "b", Dir: tmpDir, Options: DefaultOptions(), Filter: filter})
		assert.Empty(t, results)
	})

	t.Run("non-matching directory still passes", func(t *testing.T) {
		dirFilter := RegexFilter(regexp.MustCompile(`^zzz`))
		results := c.Complete(Request{Word: "f", Dir: tmpDir, Options: DefaultOptions(), Filter: dirFilter})
		assert.ElementsMatch(t, []string{"foo"}, results)
	})
}

func TestPredicateFilter(t *testing.T) {
	tmpDir := setupFilterDirectory(t)

	filter := PredicateFilter(func(path string) bool {
		return filepath.Ext(path) == ".sh"
	})

	c := New(zap.NewNop())
	results := c.Complete(Request{Word: "", Dir: tmpDir, Options: DefaultOptions(), Filter: filter})
	assert.ElementsMatch(t, []string{"script.sh"}, results)
}
