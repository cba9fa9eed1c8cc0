package model

import (
	"fmt"
)

// Verdict is the overall result of a check run: one severity, a
// one-line summary and the per-severity bucket counts it was reduced
// from. It is the only output artifact of the tool.
type Verdict struct {
	Severity Severity
	Summary  string
	Examined int
	Counts   map[Severity]int
	Perfdata string
	Details  []string
}

// CountsString formats the bucket counts in the classic plugin style.
// The UNKNOWN bucket is only mentioned when it is not empty, so it is
// never mistaken for a regular severity level.
func (v Verdict) CountsString() string {
	s := fmt.Sprintf("%d OK, %d WARNING, %d CRITICAL",
		v.Counts[SeverityOK], v.Counts[SeverityWARNING], v.Counts[SeverityCRITICAL])

	if n := v.Counts[SeverityUNKNOWN]; n > 0 {
		s += fmt.Sprintf(", %d UNKNOWN", n)
	}

	return s
}

// RenderLine formats the one-line plugin output: severity, summary and
// optional perfdata after the '|' separator.
func (v Verdict) RenderLine() string {
	line := v.Severity.String()

	if v.Summary != "" {
		line += " " + v.Summary
	}

	if v.Perfdata != "" {
		line += "|" + v.Perfdata
	}

	return line
}
