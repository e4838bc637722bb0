package linediff

import (
	"fmt"
	"strings"
)

// validate checks the Changeset invariants and returns an error on the first violation.
func (c Changeset) validate() error {
	var expAll, actAll strings.Builder
	for hi, h := range c.Hunks {
		if err := checkOp(h.Op, h.Expected, h.Actual); err != nil {
			return fmt.Errorf("hunk[%d]: %v", hi, err)
		}
		expAll.WriteString(h.Expected)
		actAll.WriteString(h.Actual)

		if h.Op == OpEqual {
			if h.Lines != nil {
				return fmt.Errorf("hunk[%d]: equal hunk carries lines", hi)
			}
			continue
		}

		var expLines, actLines strings.Builder
		for li, ln := range h.Lines {
			if err := checkOp(ln.Op, ln.Expected, ln.Actual); err != nil {
				return fmt.Errorf("hunk[%d].line[%d]: %v", hi, li, err)
			}
			expLines.WriteString(ln.Expected)
			actLines.WriteString(ln.Actual)

			if ln.Op == OpEqual {
				if ln.Segments != nil {
					return fmt.Errorf("hunk[%d].line[%d]: equal line carries segments", hi, li)
				}
				continue
			}

			var expSegs, actSegs strings.Builder
			for si, s := range ln.Segments {
				if strings.Contains(s.Expected, eol) || strings.Contains(s.Actual, eol) {
					return fmt.Errorf("hunk[%d].line[%d].segment[%d]: segment contains newline", hi, li, si)
				}
				if err := checkOp(s.Op, s.Expected, s.Actual); err != nil {
					return fmt.Errorf("hunk[%d].line[%d].segment[%d]: %v", hi, li, si, err)
				}
				expSegs.WriteString(s.Expected)
				actSegs.WriteString(s.Actual)
			}
			if expSegs.String()+trailingEOL(ln.Expected) != ln.Expected {
				return fmt.Errorf("hunk[%d].line[%d]: segments do not reconstruct expected side", hi, li)
			}
			if actSegs.String()+trailingEOL(ln.Actual) != ln.Actual {
				return fmt.Errorf("hunk[%d].line[%d]: segments do not reconstruct actual side", hi, li)
			}
		}
		if expLines.String() != h.Expected {
			return fmt.Errorf("hunk[%d]: lines do not reconstruct expected side", hi)
		}
		if actLines.String() != h.Actual {
			return fmt.Errorf("hunk[%d]: lines do not reconstruct actual side", hi)
		}
	}
	if expAll.String() != c.Expected {
		return fmt.Errorf("hunks do not reconstruct expected text")
	}
	if actAll.String() != c.Actual {
		return fmt.Errorf("hunks do not reconstruct actual text")
	}
	return nil
}

// checkOp verifies that the expected/actual sides are populated consistently with op.
func checkOp(op Op, expected, actual string) error {
	switch op {
	case OpEqual:
		if expected != actual {
			return fmt.Errorf("equal op with differing sides")
		}
	case OpInsert:
		if expected != "" || actual == "" {
			return fmt.Errorf("insert op requires empty expected and non-empty actual")
		}
	case OpDelete:
		if expected == "" || actual != "" {
			return fmt.Errorf("delete op requires non-empty expected and empty actual")
		}
	case OpReplace:
		if expected == "" || actual == "" {
			return fmt.Errorf("replace op requires both sides non-empty")
		}
	default:
		return fmt.Errorf("unknown op %d", op)
	}
	return nil
}

func trailingEOL(line string) string {
	if strings.HasSuffix(line, eol) {
		return eol
	}
	return ""
}
