// Package pathcomp produces filename and directory completion candidates
// for interactive shells. It normalizes the typed word (tilde expansion,
// leading ./, ../ and / runs, dot-segment policy), builds filesystem
// listing and filter closures, and drives the generic matching engine in
// pathmatch, re-attaching the stripped prefix to every candidate.
//
// Completion never surfaces filesystem errors: unreadable directories,
// unknown users after ~user, and policy violations all produce an empty
// result. The only errors a caller can see come from constructing an
// invalid filter.
package pathcomp

import (
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/atinylittleshell/pathcomp/pkg/pathmatch"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	// A leading ~ or ~user is only consumed once a / follows it.
	tildeRe = regexp.MustCompile(`^(~[^/]*)/`)
	// A run of leading ./, ../ and / components, possibly mixed.
	dotRunRe = regexp.MustCompile(`^((?:\.\.?/|/)+)`)
	// A standalone . or .. path segment anywhere in the word.
	dotSegRe = regexp.MustCompile(`(^|/)\.\.?(/|$)`)
)

// Completer produces completion candidates from the local filesystem.
// It holds no state between calls; every invocation re-reads the
// directories it touches.
type Completer struct {
	logger *zap.Logger
}

// New creates a Completer. The logger is optional (can be nil).
func New(logger *zap.Logger) *Completer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Completer{logger: logger}
}

// Complete returns the completion candidates for req, in listing order.
// The result is never nil; a word that cannot be completed (unreadable
// directory, unresolvable ~user, dot-segment policy violation) yields an
// empty slice.
func (c *Completer) Complete(req Request) []string {
	baseDir := req.Dir
	if baseDir == "" {
		baseDir = "."
	}

	word, startDir, prefix, ok := c.splitWord(req.Word, baseDir, req.Options)
	if !ok {
		return []string{}
	}

	cfg := pathmatch.Config{
		Word:       word,
		Dir:        startDir,
		List:       listEntries,
		IsDir:      isDir,
		IgnoreCase: req.Options.IgnoreCase,
		Fuzzy:      req.Options.Fuzzy,
		MapCase:    req.Options.MapCase,
		ExpandPath: req.Options.ExpandPath,
		DigLeaf:    req.Options.DigLeaf,
	}
	if req.Filter != nil {
		cfg.Filter = req.Filter.match
	}

	results := pathmatch.Complete(cfg)
	if prefix != "" {
		results = lo.Map(results, func(r string, _ int) string { return prefix + r })
	}

	c.logger.Debug(
		"path completion",
		zap.String("word", req.Word),
		zap.String("prefix", prefix),
		zap.Int("candidates", len(results)),
	)
	return results
}

// splitWord strips a leading ~user/ token or ./, ../, / run from the word,
// resolving it to the directory completion starts from and the prefix to
// re-attach to every candidate. ok is false when the request must fail
// closed.
func (c *Completer) splitWord(word, baseDir string, opts Options) (stripped, startDir, prefix string, ok bool) {
	stripped, startDir, prefix = word, baseDir, ""

	if m := tildeRe.FindStringSubmatch(word); opts.ExpandTilde && m != nil {
		home, err := resolveHome(m[1])
		if err != nil || home == "" {
			c.logger.Debug("tilde expansion failed", zap.String("token", m[1]), zap.Error(err))
			return "", "", "", false
		}
		stripped, startDir, prefix = word[len(m[0]):], home, m[0]
	} else if m := dotRunRe.FindStringSubmatch(word); opts.AllowDot && m != nil {
		run := m[1]
		dir := strings.TrimRight(run, "/")
		if dir == "" {
			// The run was only slashes; completion starts at the root.
			dir = "/"
		} else if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		stripped, startDir, prefix = word[len(run):], dir, run
	}

	if !opts.AllowDot && dotSegRe.MatchString(stripped) {
		c.logger.Debug("word rejected by dot segment policy", zap.String("word", word))
		return "", "", "", false
	}
	return stripped, startDir, prefix, true
}

// resolveHome expands a leading ~ or ~user token to a home directory.
// The user lookup is case-sensitive even when matching is not.
func resolveHome(token string) (string, error) {
	name := strings.TrimPrefix(token, "~")
	if name == "" {
		return os.UserHomeDir()
	}
	u, err := user.Lookup(name)
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}

// listEntries reads the children of dir in byte order. The . and ..
// pseudo-entries are offered only once the user has typed something for
// the leaf, mirroring conventional shell behavior.
func listEntries(dir, leaf string, dirsOnly bool) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	if leaf != "" {
		names = append(names, ".", "..")
	}
	sort.Strings(names)

	if dirsOnly {
		names = lo.Filter(names, func(name string, _ int) bool {
			return isDir(filepath.Join(dir, name))
		})
	}
	return names, nil
}

// isDir reports whether path is a directory, following symlinks.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
