package expiry

import (
	"fmt"
	"math"
	"sort"

	"github.com/abundo-se/check-rrsig-expiry/model"
)

// Reduce collapses per-record findings into the overall verdict. The
// result is independent of the order of the findings.
//
// An empty finding set is itself an anomaly: a zone that is expected to
// be signed but shows no signatures is not a clean pass.
func Reduce(findings []Finding, th Thresholds) model.Verdict {
	counts := map[model.Severity]int{
		model.SeverityOK:       0,
		model.SeverityWARNING:  0,
		model.SeverityCRITICAL: 0,
		model.SeverityUNKNOWN:  0,
	}

	if len(findings) == 0 {
		counts[model.SeverityUNKNOWN]++

		return model.Verdict{
			Severity: model.SeverityUNKNOWN,
			Summary:  "no RRSIG records found",
			Counts:   counts,
		}
	}

	worst := findings[0]
	minRemaining := math.Inf(1)

	var details []string

	for _, f := range findings {
		counts[f.Severity]++

		if worseThan(f, worst) {
			worst = f
		}

		if f.Severity != model.SeverityUNKNOWN && f.RemainingDays < minRemaining {
			minRemaining = f.RemainingDays
		}

		if f.Severity != model.SeverityOK {
			details = append(details, fmt.Sprintf("%s %s", f.Severity, f.Label))
		}
	}

	sort.Strings(details)

	v := model.Verdict{
		Severity: worst.Severity,
		Examined: len(findings),
		Counts:   counts,
		Details:  details,
	}

	v.Summary = fmt.Sprintf("%s; %s", worst.Label, v.CountsString())

	if !math.IsInf(minRemaining, 1) {
		v.Perfdata = fmt.Sprintf("rrsig_min_days=%.1f;%g;%g", minRemaining, th.WarningDays, th.CriticalDays)
	}

	return v
}

// worseThan decides whether a should be reported instead of b. Ties on
// severity go to the smaller remaining validity, then to the label, so
// shuffled input yields the same verdict.
func worseThan(a, b Finding) bool {
	if a.Severity != b.Severity {
		return a.Severity > b.Severity
	}

	if a.RemainingDays != b.RemainingDays {
		return a.RemainingDays < b.RemainingDays
	}

	return a.Label < b.Label
}
