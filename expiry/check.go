package expiry

import (
	"fmt"
	"time"

	"github.com/abundo-se/check-rrsig-expiry/log"
	"github.com/abundo-se/check-rrsig-expiry/model"
	"github.com/miekg/dns"
)

// Check extracts all signature records from the zone's record set,
// evaluates each one and reduces the findings to a single verdict.
//
// A record that claims to be an RRSIG but did not decode as one (it
// arrives as an opaque unknown-type record) is never dropped silently:
// it yields an UNKNOWN finding that takes part in the reduction like
// any other. All other record types are irrelevant to this check and
// are skipped.
func Check(records []dns.RR, now time.Time, th Thresholds) model.Verdict {
	logger := log.PrefixedLog("expiry")

	var findings []Finding

	for _, rr := range records {
		if rr.Header().Rrtype != dns.TypeRRSIG {
			continue
		}

		sig, ok := rr.(*dns.RRSIG)
		if !ok {
			logger.Warnf("malformed RRSIG record for %s", log.EscapeInput(rr.Header().Name))

			findings = append(findings, Finding{
				Signer:   rr.Header().Name,
				Severity: model.SeverityUNKNOWN,
				Label:    fmt.Sprintf("%s: malformed RRSIG record", rr.Header().Name),
			})

			continue
		}

		findings = append(findings, Evaluate(sig, now, th))
	}

	logger.Debugf("evaluated %d RRSIG records out of %d zone records", len(findings), len(records))

	return Reduce(findings, th)
}
