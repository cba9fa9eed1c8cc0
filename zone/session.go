package zone

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// sessionState is the explicit transfer state: a zone transfer starts
// with the zone's SOA record and ends when that SOA appears a second
// time.
type sessionState uint8

const (
	stateAwaitingFirstSOA sessionState = iota
	stateStreaming
	stateComplete
)

// session tracks one in-progress zone transfer.
type session struct {
	zone     string
	state    sessionState
	serial   uint32
	messages int
	records  []dns.RR
}

func newSession(zone string) *session {
	return &session{zone: zone}
}

// observe runs a single record through the transfer state machine.
// Records are accumulated in arrival order; the terminating SOA is not
// duplicated into the result set.
func (s *session) observe(rr dns.RR) error {
	switch s.state {
	case stateAwaitingFirstSOA:
		soa, ok := rr.(*dns.SOA)
		if !ok || !s.isZoneApex(rr) {
			return &TransferError{
				Kind:  Truncated,
				Cause: fmt.Errorf("transfer of %s did not start with its SOA record", s.zone),
			}
		}

		s.serial = soa.Serial
		s.records = append(s.records, rr)
		s.state = stateStreaming

	case stateStreaming:
		if _, ok := rr.(*dns.SOA); ok && s.isZoneApex(rr) {
			s.state = stateComplete

			return nil
		}

		s.records = append(s.records, rr)

	case stateComplete:
		// trailing records after the terminating SOA are ignored
	}

	return nil
}

func (s *session) isZoneApex(rr dns.RR) bool {
	return strings.EqualFold(rr.Header().Name, s.zone)
}
