package zone

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/abundo-se/check-rrsig-expiry/log"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// Request describes where a zone's records should come from.
type Request struct {
	Zone     string
	Host     string
	Port     uint16
	ZoneFile string
	TSIG     *TSIGKey
	Timeout  time.Duration
}

// Transferrer fetches a zone over the network.
type Transferrer interface {
	Transfer(ctx context.Context, req Request) ([]dns.RR, error)
}

// Loader obtains the complete record set of a zone, either from a
// previously saved zone file or via zone transfer.
type Loader struct {
	transfer Transferrer
	logger   *logrus.Entry
}

func NewLoader(t Transferrer) *Loader {
	return &Loader{
		transfer: t,
		logger:   log.PrefixedLog("zone"),
	}
}

// Load returns all records of the zone. A configured zone file bypasses
// the network transfer completely.
func (l *Loader) Load(ctx context.Context, req Request) ([]dns.RR, error) {
	if req.ZoneFile != "" {
		return l.loadFile(req)
	}

	records, err := l.transfer.Transfer(ctx, req)
	if err != nil {
		return nil, &SourceError{Kind: TransferFailed, Cause: err}
	}

	return records, nil
}

func (l *Loader) loadFile(req Request) ([]dns.RR, error) {
	f, err := os.Open(req.ZoneFile)
	if err != nil {
		return nil, &SourceError{Kind: FileUnreadable, Cause: err}
	}
	defer f.Close()

	origin := ""
	if req.Zone != "" {
		origin = dns.Fqdn(req.Zone)
	}

	var records []dns.RR

	zp := dns.NewZoneParser(bufio.NewReader(f), origin, req.ZoneFile)
	zp.SetIncludeAllowed(true)

	for rr, ok := zp.Next(); ok; rr, ok = zp.Next() {
		records = append(records, rr)
	}

	if err := zp.Err(); err != nil {
		return nil, &SourceError{Kind: ParseError, Cause: err}
	}

	l.logger.Debugf("read %d records from %s", len(records), req.ZoneFile)

	return records, nil
}
