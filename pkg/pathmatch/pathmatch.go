// Package pathmatch implements a generic path completion engine.
// It walks the directory components of a partially typed path against
// entries produced by a caller-supplied listing function, matches the
// final fragment by prefix (optionally case-insensitive, case-mapped or
// fuzzy), and returns completed paths relative to the starting directory.
//
// The engine never touches the filesystem directly. All access goes
// through the List, IsDir and Filter callbacks, which makes it usable
// against real directories, virtual filesystems, or test fixtures alike.
package pathmatch

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// ListFunc reads the children of dir. leaf is the fragment currently being
// completed inside dir (empty while the user has not typed anything for the
// final segment), and dirsOnly requests that non-directories be omitted.
// A non-nil error means dir contributes no candidates.
type ListFunc func(dir, leaf string, dirsOnly bool) ([]string, error)

// Config carries the word being completed and the callbacks and matching
// options the engine runs with.
type Config struct {
	// Word is the partially typed path, relative to Dir.
	Word string
	// Dir is the directory completion starts from. Defaults to ".".
	Dir string

	// List reads directory children. Required.
	List ListFunc
	// IsDir reports whether path is a directory (following symlinks).
	// Required when DigLeaf is set.
	IsDir func(path string) bool
	// Filter restricts which leaf entries become candidates. Optional.
	// It receives the full path of the entry.
	Filter func(path string) bool

	// IgnoreCase makes segment and leaf matching case-insensitive.
	IgnoreCase bool
	// Fuzzy enables fuzzy leaf matching when prefix matching finds
	// nothing. Level 1 requires the first character to match; level 2
	// and above allow an unanchored subsequence match.
	Fuzzy int
	// MapCase lets a lowercase typed character match its uppercase
	// counterpart, but not the other way around.
	MapCase bool
	// ExpandPath expands partially typed intermediate segments, so
	// "fo/in" can complete to "folder/inside".
	ExpandPath bool
	// DigLeaf descends into a lone directory candidate for as long as
	// it contains exactly one entry.
	DigLeaf bool
}

// candidate pairs the completed path fragment with its filesystem path so
// leaf digging can keep listing without re-deriving the location.
type candidate struct {
	rel  string
	path string
}

// Complete returns the completion candidates for cfg.Word, relative to
// cfg.Dir. Unreadable directories prune their branch silently; the result
// is never nil.
func Complete(cfg Config) []string {
	word := cfg.Word
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}

	// An absolute word re-roots the walk; the leading slash is restored
	// on every candidate.
	head := ""
	if strings.HasPrefix(word, "/") {
		head = "/"
		dir = "/"
		word = strings.TrimLeft(word, "/")
	}

	segments := strings.Split(word, "/")
	leaf := segments[len(segments)-1]
	branches := walk(cfg, dir, segments[:len(segments)-1])

	var found []candidate
	for _, b := range branches {
		names, err := cfg.List(b.path, leaf, false)
		if err != nil {
			continue
		}
		if cfg.Filter != nil {
			names = lo.Filter(names, func(name string, _ int) bool {
				return cfg.Filter(joinPath(b.path, name))
			})
		}
		for _, name := range matchLeaf(cfg, leaf, names) {
			found = append(found, candidate{
				rel:  joinRel(b.rel, name),
				path: joinPath(b.path, name),
			})
		}
	}

	if cfg.DigLeaf && len(found) == 1 && cfg.IsDir != nil && cfg.IsDir(found[0].path) {
		found[0] = dig(cfg, found[0])
	}

	return lo.Map(found, func(c candidate, _ int) string { return head + c.rel })
}

// walk resolves the already-typed intermediate segments, branching when a
// segment matches more than one directory.
func walk(cfg Config, dir string, segments []string) []candidate {
	branches := []candidate{{path: dir}}
	for _, seg := range segments {
		if seg == "" {
			// Doubled slashes collapse.
			continue
		}
		var next []candidate
		for _, b := range branches {
			names, err := cfg.List(b.path, seg, true)
			if err != nil {
				continue
			}
			for _, name := range matchSegment(cfg, seg, names) {
				next = append(next, candidate{
					rel:  joinRel(b.rel, name),
					path: joinPath(b.path, name),
				})
			}
		}
		branches = next
		if len(branches) == 0 {
			break
		}
	}
	return branches
}

// matchSegment resolves one intermediate segment against the listed
// directory names. Without ExpandPath the segment must name a directory
// in full; with it, any prefix match is a branch.
func matchSegment(cfg Config, seg string, names []string) []string {
	if cfg.ExpandPath {
		return lo.Filter(names, func(name string, _ int) bool {
			return matchesPrefix(cfg, name, seg)
		})
	}
	if lo.Contains(names, seg) {
		return []string{seg}
	}
	if !cfg.IgnoreCase && !cfg.MapCase {
		return nil
	}
	return lo.Filter(names, func(name string, _ int) bool {
		return len(name) == len(seg) && matchesPrefix(cfg, name, seg)
	})
}

// matchLeaf selects the listed names matching the typed leaf fragment.
// Prefix matches win; fuzzy matching only kicks in when enabled and no
// prefix match exists, and orders its results by fuzzy rank.
func matchLeaf(cfg Config, leaf string, names []string) []string {
	if leaf == "" {
		return names
	}
	matched := lo.Filter(names, func(name string, _ int) bool {
		return matchesPrefix(cfg, name, leaf)
	})
	if len(matched) > 0 || cfg.Fuzzy < 1 {
		return matched
	}

	results := fuzzy.Find(leaf, names)
	if cfg.Fuzzy == 1 {
		results = lo.Filter(results, func(m fuzzy.Match, _ int) bool {
			return len(m.MatchedIndexes) > 0 && m.MatchedIndexes[0] == 0
		})
	}
	return lo.Map(results, func(m fuzzy.Match, _ int) string { return m.Str })
}

// matchesPrefix reports whether name starts with frag under the configured
// case rules.
func matchesPrefix(cfg Config, name, frag string) bool {
	if len(frag) > len(name) {
		return false
	}
	for i := 0; i < len(frag); i++ {
		n, f := name[i], frag[i]
		if n == f {
			continue
		}
		if cfg.IgnoreCase && lowerByte(n) == lowerByte(f) {
			continue
		}
		if cfg.MapCase && f >= 'a' && f <= 'z' && n == f-'a'+'A' {
			continue
		}
		return false
	}
	return true
}

// dig extends a lone directory candidate for as long as the directory
// holds exactly one (filtered) entry.
func dig(cfg Config, c candidate) candidate {
	for cfg.IsDir(c.path) {
		names, err := cfg.List(c.path, "", false)
		if err != nil {
			return c
		}
		if cfg.Filter != nil {
			names = lo.Filter(names, func(name string, _ int) bool {
				return cfg.Filter(joinPath(c.path, name))
			})
		}
		if len(names) != 1 {
			return c
		}
		c = candidate{
			rel:  joinRel(c.rel, names[0]),
			path: joinPath(c.path, names[0]),
		}
	}
	return c
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

func joinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
