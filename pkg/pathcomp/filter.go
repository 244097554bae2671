package pathcomp

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Filter restricts which directory entries become completion candidates.
// It is a closed set of three variants, so a request can never carry more
// than one filter form: ModeFilter, RegexFilter, or PredicateFilter.
type Filter interface {
	match(path string) bool
}

// modeTest is one flag check compiled from a mode pattern, with the
// negation state in effect when the flag was read.
type modeTest struct {
	neg  bool
	flag byte
}

type modeFilter struct {
	groups [][]modeTest
}

// ModeFilter compiles a permission pattern into a Filter. The pattern is a
// pipe-separated list of alternative groups; an entry passes if any group
// accepts it. Within a group, flags are checked left to right:
//
//	r, w, x   owner read / write / execute bit
//	f         regular file
//	d         directory
//	-         toggles negation for the flags that follow
//
// The negation toggle carries across | boundaries, so "-f|d" checks for a
// non-file or a non-directory. An unknown flag is a configuration error.
func ModeFilter(pattern string) (Filter, error) {
	f := &modeFilter{}
	neg := false
	for _, group := range strings.Split(pattern, "|") {
		group = strings.TrimSpace(group)
		var tests []modeTest
		for i := 0; i < len(group); i++ {
			switch c := group[i]; c {
			case '-':
				neg = !neg
			case 'r', 'w', 'x', 'f', 'd':
				tests = append(tests, modeTest{neg: neg, flag: c})
			default:
				return nil, fmt.Errorf("mode pattern %q: unknown flag %q", pattern, string(group[i]))
			}
		}
		f.groups = append(f.groups, tests)
	}
	return f, nil
}

// match checks the entry's mode against each group, short-circuiting a
// group on its first failing test. An entry that cannot be stat'ed does
// not pass; one unreadable entry must not break its siblings.
func (f *modeFilter) match(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	mode := info.Mode()
	for _, tests := range f.groups {
		passed := true
		for _, t := range tests {
			var ok bool
			switch t.flag {
			case 'r':
				ok = mode.Perm()&0400 != 0
			case 'w':
				ok = mode.Perm()&0200 != 0
			case 'x':
				ok = mode.Perm()&0100 != 0
			case 'f':
				ok = mode.IsRegular()
			case 'd':
				ok = mode.IsDir()
			}
			if t.neg {
				ok = !ok
			}
			if !ok {
				passed = false
				break
			}
		}
		if passed {
			return true
		}
	}
	return false
}

type regexFilter struct {
	re *regexp.Regexp
}

// RegexFilter returns a Filter that accepts directories unconditionally
// and regular files whose name matches re. Everything else is rejected.
func RegexFilter(re *regexp.Regexp) Filter {
	return &regexFilter{re: re}
}

func (f *regexFilter) match(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return true
	}
	return info.Mode().IsRegular() && f.re.MatchString(filepath.Base(path))
}

type predicateFilter struct {
	fn func(path string) bool
}

// PredicateFilter wraps an arbitrary predicate over the entry path.
func PredicateFilter(fn func(path string) bool) Filter {
	return &predicateFilter{fn: fn}
}

func (f *predicateFilter) match(path string) bool {
	return f.fn(path)
}
