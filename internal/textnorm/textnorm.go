// Package textnorm cleans raw extracted document text and individual field values.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// controlMap maps the control characters emitted by PDF text backends to plain whitespace.
var controlMap = map[rune]rune{
	'\x03': ' ', // ETX
	'\x08': ' ', // BS
	'\x09': ' ', // TAB
	'\x0f': ' ', // SI
	'\x11': ' ', // DC1
	'\x12': ' ', // DC2
	'\x13': ' ', // DC3
	'\x14': ' ', // DC4
	'\x15': ' ', // NAK
	'\x16': ' ', // SYN
	'\x17': ' ', // ETB
	'\x18': ' ', // CAN
	'\x19': ' ', // EM
	'\x1c': ' ', // FS
	'\x1d': ' ', // GS
	'\x0a': '\n',
	'\x0c': '\n', // FF, page break
	'\x0d': '\n',
}

var entityReplacer = strings.NewReplacer("&amp;", "&")

// CleanContent normalizes document text: non-ASCII runes are dropped, control characters become
// spaces and line/page breaks become newlines. Line structure is kept so that line-anchored
// rules still apply.
func CleanContent(raw string) string {
	t := transform.Chain(
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
		runes.Map(func(r rune) rune {
			if m, ok := controlMap[r]; ok {
				return m
			}
			return r
		}),
	)
	out, _, err := transform.String(t, raw)
	if err != nil {
		// The transformers above never fail on valid input; keep the raw text otherwise.
		out = raw
	}
	return entityReplacer.Replace(out)
}

// CleanValue collapses all whitespace runs to one space, trims and upper-cases a field value.
func CleanValue(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
