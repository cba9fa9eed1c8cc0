package zone

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/abundo-se/check-rrsig-expiry/log"
	retry "github.com/avast/retry-go/v4"
	"github.com/hako/durafmt"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

const (
	// leeway on the TSIG timestamp, same value dig uses
	tsigFudge = 300

	dialAttempts   = 3
	dialRetryDelay = 250 * time.Millisecond
)

// Client performs authoritative zone transfers (AXFR) over TCP. The
// response stream is read message by message: each message is
// length-prefixed, carries a batch of records and, for authenticated
// transfers, a TSIG record whose MAC chains to the previous message.
type Client struct {
	logger *logrus.Entry
}

func NewClient() *Client {
	return &Client{
		logger: log.PrefixedLog("transfer"),
	}
}

// Transfer fetches the zone from req.Host. One deadline covers connect
// and the complete transfer; on any failure the already received
// records are discarded and a TransferError describes the cause.
func (c *Client) Transfer(ctx context.Context, req Request) ([]dns.RR, error) {
	addr := net.JoinHostPort(req.Host, strconv.Itoa(int(req.Port)))
	start := time.Now()
	deadline := start.Add(req.Timeout)

	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	conn, err := c.dial(ctx, addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	_ = conn.SetDeadline(deadline)

	// close the connection as soon as the caller gives up
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	records, err := c.stream(conn, req)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, &TransferError{Kind: Timeout, Cause: ctx.Err()}
		case ctx.Err() != nil:
			return nil, &TransferError{Kind: Truncated, Cause: ctx.Err()}
		}

		return nil, err
	}

	c.logger.Debugf("transfer took %s", durafmt.Parse(time.Since(start).Round(time.Millisecond)))

	return records, nil
}

func (c *Client) dial(ctx context.Context, addr string) (*dns.Conn, error) {
	var conn net.Conn

	d := &net.Dialer{}

	err := retry.Do(
		func() error {
			var err error
			conn, err = d.DialContext(ctx, "tcp", addr)

			return err
		},
		retry.Context(ctx),
		retry.Attempts(dialAttempts),
		retry.Delay(dialRetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TransferError{Kind: Timeout, Cause: err}
		}

		return nil, &TransferError{Kind: ConnectionRefused, Cause: err}
	}

	return &dns.Conn{Conn: conn}, nil
}

// stream sends the transfer request and consumes response messages
// until the session state machine reports completion.
func (c *Client) stream(conn *dns.Conn, req Request) ([]dns.RR, error) {
	zoneName := dns.Fqdn(req.Zone)

	query := new(dns.Msg)
	query.SetAxfr(zoneName)

	var (
		wire       []byte
		requestMAC string
		err        error
	)

	if req.TSIG != nil {
		query.SetTsig(req.TSIG.fqdnName(), req.TSIG.algorithmFQDN(), tsigFudge, time.Now().Unix())

		wire, requestMAC, err = dns.TsigGenerate(query, req.TSIG.Secret, "", false)
	} else {
		wire, err = query.Pack()
	}

	if err != nil {
		return nil, &TransferError{Kind: Truncated, Cause: err}
	}

	if _, err := conn.Write(wire); err != nil {
		return nil, classifyStreamError(err)
	}

	sess := newSession(zoneName)
	buf := make([]byte, dns.MaxMsgSize)
	timersOnly := false

	for sess.state != stateComplete {
		n, err := conn.Read(buf)
		if err != nil {
			return nil, classifyStreamError(err)
		}

		msg := new(dns.Msg)
		if err := msg.Unpack(buf[:n]); err != nil {
			return nil, &TransferError{Kind: Truncated, Cause: err}
		}

		if msg.Id != query.Id {
			return nil, &TransferError{
				Kind:  Truncated,
				Cause: fmt.Errorf("response id %d does not match request id %d", msg.Id, query.Id),
			}
		}

		if msg.Rcode != dns.RcodeSuccess {
			return nil, &TransferError{
				Kind:  Truncated,
				Cause: fmt.Errorf("server answered with %s", dns.RcodeToString[msg.Rcode]),
			}
		}

		if req.TSIG != nil {
			tsig := msg.IsTsig()
			if tsig == nil {
				// a server that stops signing mid-transfer is as
				// untrustworthy as one that signs wrongly
				return nil, &TransferError{Kind: AuthFailed, Cause: errors.New("response message is not signed")}
			}

			if err := dns.TsigVerify(buf[:n], req.TSIG.Secret, requestMAC, timersOnly); err != nil {
				return nil, &TransferError{Kind: AuthFailed, Cause: err}
			}

			requestMAC = tsig.MAC
			timersOnly = true
		}

		sess.messages++

		for _, rr := range msg.Answer {
			if err := sess.observe(rr); err != nil {
				return nil, err
			}

			if sess.state == stateComplete {
				break
			}
		}
	}

	c.logger.Debugf("transferred zone %s: %d records in %d messages, serial %d",
		log.EscapeInput(zoneName), len(sess.records), sess.messages, sess.serial)

	return sess.records, nil
}

func classifyStreamError(err error) *TransferError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransferError{Kind: Timeout, Cause: err}
	}

	return &TransferError{Kind: Truncated, Cause: err}
}
