package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single pattern evaluation against one document.
const MatchTimeout = 2 * time.Second

// Pattern options, mirroring the usual i/m/s regex flags.
const (
	IgnoreCase = regexp2.IgnoreCase
	Multiline  = regexp2.Multiline
	DotAll     = regexp2.Singleline
)

// Rule is one ordered recognizer for a Field: a pattern whose first capture group holds the value.
// Rules are immutable and safe for concurrent use.
type Rule struct {
	re *regexp2.Regexp
}

// NewRule compiles pattern with the given options.
func NewRule(pattern string, opts regexp2.RegexOptions) (Rule, error) {
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return Rule{}, fmt.Errorf("extract.NewRule %q: %w", pattern, err)
	}
	re.MatchTimeout = MatchTimeout
	return Rule{re: re}, nil
}

// MustRule is NewRule for package-level rule tables; it panics on an invalid pattern.
func MustRule(pattern string, opts regexp2.RegexOptions) Rule {
	r, err := NewRule(pattern, opts)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the rule's source pattern.
func (r Rule) Pattern() string {
	if r.re == nil {
		return ""
	}
	return r.re.String()
}

// Capture returns the trimmed first group of the leftmost match, or "" when the pattern does
// not match. An error means the match could not be evaluated (e.g. timeout).
func (r Rule) Capture(text string) (string, error) {
	if r.re == nil {
		return "", nil
	}
	m, err := r.re.FindStringMatch(text)
	if err != nil || m == nil {
		return "", err
	}
	g := m.GroupByNumber(1)
	if g == nil {
		return "", nil
	}
	return strings.TrimSpace(g.String()), nil
}

// Matches reports whether the pattern matches anywhere in text.
func (r Rule) Matches(text string) (bool, error) {
	if r.re == nil {
		return false, nil
	}
	return r.re.MatchString(text)
}
