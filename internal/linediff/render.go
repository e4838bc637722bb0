package linediff

import (
	"strings"

	"github.com/codalotl/snapcheck/internal/textwidth"
)

// RenderOptions control Changeset.Render.
type RenderOptions struct {
	Color    bool // Colorize removed/added lines with ANSI escapes and emphasize the changed segments within them.
	Context  int  // Unchanged lines shown around each change group. Negative renders the entire text as context.
	MaxWidth int  // Clip each rendered line to this display width (marker included). 0 disables clipping.
}

// ANSI escapes for colorized rendering.
const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
)

// Render returns a human-oriented listing of the changeset. Each line is prefixed with " " (context), "-" (removed), or "+" (added); a replaced line renders as
// a "-" line followed by a "+" line. There are no @@ hunk headers.
//
// With Context >= 0, change groups are surrounded by up to Context unchanged lines, and two groups separated by at most 2*Context unchanged lines merge into
// one. With Color, removed/added lines are red/green and the intra-line segments that differ are bold. Lines wider than MaxWidth are cut on grapheme boundaries
// with a trailing ellipsis; colored emphasis is skipped on cut lines since the segment boundaries no longer line up.
//
// Rendered lines lose their trailing newline; the result joins them with "\n". An empty changeset renders as "".
func (c Changeset) Render(opts RenderOptions) string {
	r := renderer{opts: opts}

	if opts.Context < 0 {
		for _, h := range c.Hunks {
			if h.Op == OpEqual {
				for _, ln := range splitLines(h.Expected) {
					r.context(ln)
				}
				continue
			}
			r.change(h)
		}
		return strings.Join(r.out, eol)
	}

	i := 0
	for i < len(c.Hunks) {
		if c.Hunks[i].Op == OpEqual {
			i++
			continue
		}

		// Pre-context from the tail of the preceding equal hunk.
		if i > 0 && opts.Context > 0 {
			prev := splitLines(c.Hunks[i-1].Expected)
			k := min(opts.Context, len(prev))
			for _, ln := range prev[len(prev)-k:] {
				r.context(ln)
			}
		}
		r.change(c.Hunks[i])

		// Swallow nearby changes into the same group when the equal gap is small enough; otherwise emit trailing context and close the group.
		j := i + 1
		for j < len(c.Hunks) {
			if c.Hunks[j].Op != OpEqual {
				r.change(c.Hunks[j])
				j++
				continue
			}
			eq := splitLines(c.Hunks[j].Expected)
			if j+1 < len(c.Hunks) && c.Hunks[j+1].Op != OpEqual && len(eq) <= 2*opts.Context {
				for _, ln := range eq {
					r.context(ln)
				}
				j++
				r.change(c.Hunks[j])
				j++
				continue
			}
			k := min(opts.Context, len(eq))
			for _, ln := range eq[:k] {
				r.context(ln)
			}
			break
		}
		i = j
	}

	return strings.Join(r.out, eol)
}

type renderer struct {
	opts RenderOptions
	out  []string
}

func (r *renderer) context(line string) {
	core, _ := r.clip(strings.TrimSuffix(line, eol))
	r.out = append(r.out, " "+core)
}

func (r *renderer) change(h Hunk) {
	for _, ln := range h.Lines {
		switch ln.Op {
		case OpEqual:
			r.context(ln.Expected)
		case OpDelete:
			r.changed('-', ln)
		case OpInsert:
			r.changed('+', ln)
		case OpReplace:
			r.changed('-', ln)
			r.changed('+', ln)
		}
	}
}

// changed emits one side of a changed line.
func (r *renderer) changed(tag byte, ln Line) {
	side := ln.Expected
	base := ansiRed
	if tag == '+' {
		side = ln.Actual
		base = ansiGreen
	}
	core := strings.TrimSuffix(side, eol)
	clipped, cut := r.clip(core)

	if !r.opts.Color {
		r.out = append(r.out, string(tag)+clipped)
		return
	}
	if cut || len(ln.Segments) == 0 {
		r.out = append(r.out, base+string(tag)+clipped+ansiReset)
		return
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteByte(tag)
	for _, s := range ln.Segments {
		text := s.Expected
		emphasize := s.Op == OpDelete || s.Op == OpReplace
		if tag == '+' {
			text = s.Actual
			emphasize = s.Op == OpInsert || s.Op == OpReplace
		}
		if s.Op == OpEqual || !emphasize {
			b.WriteString(text)
			continue
		}
		b.WriteString(ansiBold)
		b.WriteString(text)
		b.WriteString(ansiReset)
		b.WriteString(base)
	}
	b.WriteString(ansiReset)
	r.out = append(r.out, b.String())
}

// clip cuts s to the width budget, leaving one column for the line marker. Reports whether anything was cut.
func (r *renderer) clip(s string) (string, bool) {
	if r.opts.MaxWidth <= 1 {
		return s, false
	}
	clipped := textwidth.Truncate(s, r.opts.MaxWidth-1, "…")
	return clipped, clipped != s
}
