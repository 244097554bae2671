package pathcomp

import (
	"github.com/samber/lo"
	"mvdan.cc/sh/v3/syntax"
)

// QuoteAll shell-quotes every candidate that needs it, so the host shell
// can insert the result into a command line verbatim. Candidates that a
// POSIX shell would read back unchanged are left alone; ones the shell
// cannot represent at all (e.g. containing a NUL byte) are passed through
// as-is.
func QuoteAll(candidates []string) []string {
	return lo.Map(candidates, func(c string, _ int) string {
		quoted, err := syntax.Quote(c, syntax.LangBash)
		if err != nil {
			return c
		}
		return quoted
	})
}
