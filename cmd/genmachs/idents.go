package main

import (
	"strings"
	"unicode"

	"github.com/apparentlymart/arcsim/mach"
)

func makeIdentUnderscores(inp string) string {
	var b strings.Builder
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func makeIdentTitle(inp string) string {
	var b strings.Builder
	nextUpper := true
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('X')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			if nextUpper {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteString(strings.ToLower(string(r)))
			}
			nextUpper = false
		default:
			nextUpper = true
		}
	}
	return b.String()
}

// makeIdentExported keeps the letter case of names like "ARC600", which
// are already written the way they should appear in Go identifiers.
func makeIdentExported(inp string) string {
	var b strings.Builder
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('X')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			if i == 0 {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

var initialisms = map[string]string{
	"mmu": "MMU",
}

func optionIdent(o mach.Option) string {
	name := o.String()
	if ident, ok := initialisms[name]; ok {
		return "mach.Opt" + ident
	}
	return "mach.Opt" + makeIdentTitle(name)
}
