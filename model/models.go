package model

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

// Severity represents the outcome of a check ENUM(
// OK // check passed
// WARNING // threshold for warning exceeded
// CRITICAL // threshold for critical exceeded
// UNKNOWN // check could not determine a result
// )
//
// The numeric values are the classic monitoring exit codes. UNKNOWN is
// the highest value on purpose: when many per-record outcomes are
// reduced to one, an unclassifiable record must win over CRITICAL.
type Severity int

// ExitCode returns the process exit code for the severity.
func (x Severity) ExitCode() int {
	return int(x)
}

// Remapping allows reporting of one severity as another, the
// counterpart of the classic --warning-as/--critical-as/--unknown-as
// plugin switches. OK is never remapped.
type Remapping struct {
	Warning  Severity
	Critical Severity
	Unknown  Severity
}

// DefaultRemapping returns the identity mapping.
func DefaultRemapping() Remapping {
	return Remapping{
		Warning:  SeverityWARNING,
		Critical: SeverityCRITICAL,
		Unknown:  SeverityUNKNOWN,
	}
}

// Apply maps a severity onto its configured reporting severity.
func (r Remapping) Apply(s Severity) Severity {
	switch s {
	case SeverityWARNING:
		return r.Warning
	case SeverityCRITICAL:
		return r.Critical
	case SeverityUNKNOWN:
		return r.Unknown
	default:
		return s
	}
}
