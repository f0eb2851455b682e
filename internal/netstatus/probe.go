package netstatus

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

const defaultDialTimeout = 2 * time.Second

// DialProber reports the network as reachable when a TCP connection to
// Address succeeds.
type DialProber struct {
	Address string
	Timeout time.Duration
}

// Probe dials Address and closes the connection immediately.
func (p DialProber) Probe(ctx context.Context) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return fmt.Errorf("dial %s: %w", p.Address, err)
	}
	return conn.Close()
}

// AddressFor derives the host:port to probe from an endpoint URL.
func AddressFor(endpoint *url.URL) string {
	if endpoint == nil {
		return ""
	}
	if port := endpoint.Port(); port != "" {
		return net.JoinHostPort(endpoint.Hostname(), port)
	}
	port := "443"
	if endpoint.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(endpoint.Hostname(), port)
}
