// Package textwidth measures and trims strings by terminal display width for monospace fonts.
//
// Width follows go-runewidth with East Asian ambiguous characters treated as narrow, which matches non-CJK locales. Trimming walks grapheme clusters so that
// combining marks and other multi-rune clusters are never split.
package textwidth

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}()

// String returns the display width of s in terminal columns.
func String(s string) int {
	return cond.StringWidth(s)
}

// Truncate returns s unchanged when it fits within max columns. Otherwise it returns the longest grapheme-cluster prefix of s such that the prefix plus tail
// fits within max columns, with tail appended. max <= 0 returns "".
func Truncate(s string, max int, tail string) string {
	if max <= 0 {
		return ""
	}
	if String(s) <= max {
		return s
	}

	budget := max - String(tail)
	if budget < 0 {
		budget = 0
	}

	var b strings.Builder
	used := 0
	iter := graphemes.FromString(s)
	for iter.Next() {
		g := iter.Value()
		w := cond.StringWidth(g)
		if used+w > budget {
			break
		}
		b.WriteString(g)
		used += w
	}
	return b.String() + tail
}
