package pathcomp

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Options tunes how a completion request is matched. The zero value is not
// useful; start from DefaultOptions.
type Options struct {
	// IgnoreCase makes path matching case-insensitive. Tilde user lookup
	// stays case-sensitive regardless.
	IgnoreCase bool `yaml:"ignoreCase"`

	// Fuzzy sets the fuzzy matching level (0 disables it). Forwarded to
	// the matching engine untouched.
	Fuzzy int `yaml:"fuzzy"`

	// MapCase lets lowercase typed characters match uppercase entries.
	MapCase bool `yaml:"mapCase"`

	// ExpandPath expands partially typed intermediate path segments.
	ExpandPath bool `yaml:"expandPath"`

	// DigLeaf digs into a lone directory candidate while it has exactly
	// one entry.
	DigLeaf bool `yaml:"digLeaf"`

	// ExpandTilde enables ~ and ~user expansion at the start of the word.
	ExpandTilde bool `yaml:"expandTilde"`

	// AllowDot permits . and .. segments in the word. When false, any
	// word containing a dot segment completes to nothing.
	AllowDot bool `yaml:"allowDot"`
}

// DefaultOptions returns the options used by interactive shells:
// tilde expansion on, dot segments allowed, exact matching.
func DefaultOptions() Options {
	return Options{
		ExpandTilde: true,
		AllowDot:    true,
	}
}

// LoadOptions parses YAML completion options on top of the defaults, so a
// host shell can embed a completion section in its rc file.
func LoadOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to parse completion options: %w", err)
	}
	if opts.Fuzzy < 0 {
		return Options{}, fmt.Errorf("fuzzy level must not be negative, got %d", opts.Fuzzy)
	}
	return opts, nil
}

// Request is one completion invocation: the partially typed word, the
// directory relative words resolve against, matching options, and an
// optional entry filter.
type Request struct {
	// Word is the partially typed path fragment. Required.
	Word string

	// Dir is the directory relative paths resolve against.
	// Defaults to the process working directory (".").
	Dir string

	// Options tunes matching behavior.
	Options Options

	// Filter restricts which entries are offered. Nil means no filter.
	Filter Filter
}
