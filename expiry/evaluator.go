package expiry

import (
	"fmt"
	"time"

	"github.com/abundo-se/check-rrsig-expiry/model"
	"github.com/miekg/dns"
)

const (
	secondsPerDay = 24 * 60 * 60

	timeLayout = "2006-01-02 15:04:05"
)

// Thresholds are the minimum acceptable remaining validity in days.
// Critical is expected to be the tighter (smaller) bound; the values
// are applied literally either way.
type Thresholds struct {
	WarningDays  float64
	CriticalDays float64
}

// Finding is the classification of a single signature record.
type Finding struct {
	Signer        string
	TypeCovered   string
	RemainingDays float64
	Severity      model.Severity
	Label         string
}

// Evaluate computes the remaining validity of one signature and
// classifies it. now is injected so evaluation stays deterministic.
//
// A signature that is not yet valid, or whose expiration does not lie
// after its inception, is an anomaly the operator has to look at and
// classifies as UNKNOWN regardless of the thresholds.
func Evaluate(sig *dns.RRSIG, now time.Time, th Thresholds) Finding {
	expiration := AbsoluteTime(sig.Expiration, now)
	inception := AbsoluteTime(sig.Inception, now)
	remaining := expiration.Sub(now).Seconds() / secondsPerDay

	f := Finding{
		Signer:        sig.SignerName,
		TypeCovered:   dns.TypeToString[sig.TypeCovered],
		RemainingDays: remaining,
	}

	switch {
	case !expiration.After(inception):
		f.Severity = model.SeverityUNKNOWN
		f.Label = fmt.Sprintf("%s %s: expiration %s is not after inception %s",
			f.Signer, f.TypeCovered, expiration.Format(timeLayout), inception.Format(timeLayout))

	case now.Before(inception):
		f.Severity = model.SeverityUNKNOWN
		f.Label = fmt.Sprintf("%s %s: not valid before %s",
			f.Signer, f.TypeCovered, inception.Format(timeLayout))

	case remaining < th.CriticalDays:
		f.Severity = model.SeverityCRITICAL
		f.Label = fmt.Sprintf("%s %s %s", f.Signer, f.TypeCovered, describeRemaining(remaining))

	case remaining < th.WarningDays:
		f.Severity = model.SeverityWARNING
		f.Label = fmt.Sprintf("%s %s %s", f.Signer, f.TypeCovered, describeRemaining(remaining))

	default:
		f.Severity = model.SeverityOK
		f.Label = fmt.Sprintf("%s %s %s", f.Signer, f.TypeCovered, describeRemaining(remaining))
	}

	return f
}

func describeRemaining(days float64) string {
	if days < 0 {
		return fmt.Sprintf("expired %.1f days ago", -days)
	}

	return fmt.Sprintf("expires in %.1f days", days)
}
