package helpertest

import (
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/abundo-se/check-rrsig-expiry/log"
	"github.com/miekg/dns"
	"github.com/onsi/ginkgo/v2"
)

// AXFRServer is a minimal in-process authoritative server answering
// zone transfer requests, listening on a random local port.
type AXFRServer struct {
	Addr string
	Host string
	Port uint16
}

// StartAXFRServer serves the passed envelopes, one response message
// each, for every transfer request of the zone. The records are sent
// verbatim so tests can produce malformed transfers on purpose.
func StartAXFRServer(zone string, tsigSecret map[string]string, envelopes ...[]dns.RR) *AXFRServer {
	return startServer(zone, tsigSecret, func(w dns.ResponseWriter, r *dns.Msg) {
		sendEnvelopes(w, r, envelopes)

		_ = w.Close()
	})
}

// StartStallingAXFRServer sends a single envelope and then keeps the
// connection open without ever completing the transfer.
func StartStallingAXFRServer(zone string, records []dns.RR) *AXFRServer {
	return startServer(zone, nil, func(w dns.ResponseWriter, r *dns.Msg) {
		sendEnvelopes(w, r, [][]dns.RR{records})

		// short enough that server shutdown does not drag out the suite
		time.Sleep(5 * time.Second)

		_ = w.Close()
	})
}

func startServer(zone string, tsigSecret map[string]string, handler dns.HandlerFunc) *AXFRServer {
	mux := dns.NewServeMux()
	mux.HandleFunc(zone, handler)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Log().Fatal(err)
	}

	srv := &dns.Server{
		Listener:   ln,
		Net:        "tcp",
		Handler:    mux,
		TsigSecret: tsigSecret,
	}

	go func() {
		_ = srv.ActivateAndServe()
	}()

	ginkgo.DeferCleanup(func() {
		_ = srv.Shutdown()
	})

	addr := ln.Addr().String()

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		log.Log().Fatal(err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Log().Fatal(err)
	}

	return &AXFRServer{Addr: addr, Host: host, Port: uint16(port)}
}

func sendEnvelopes(w dns.ResponseWriter, r *dns.Msg, envelopes [][]dns.RR) {
	tr := new(dns.Transfer)

	ch := make(chan *dns.Envelope)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		_ = tr.Out(w, r, ch)
		wg.Done()
	}()

	for _, records := range envelopes {
		ch <- &dns.Envelope{RR: records}
	}

	close(ch)
	wg.Wait()
}
