package discovery

import (
	"errors"
	"net/netip"
	"time"
)

// Service defaults.
const (
	// ServiceType is the default DNS-SD service type of a stream server.
	ServiceType = "_pollstream._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// BrowseTimeout is the default time Resolve waits for an answer.
	BrowseTimeout = 10 * time.Second
)

// Discovery errors.
var (
	ErrNotFound  = errors.New("service not found")
	ErrNoAddress = errors.New("service has no usable address")
)

// Endpoint is a resolved service instance.
type Endpoint struct {
	// Instance is the service instance name.
	Instance string

	// Host is the advertised host name.
	Host string

	// Port is the service port.
	Port uint16

	// Addrs holds the advertised addresses, IPv4 first.
	Addrs []netip.Addr

	// Text holds the TXT record pairs.
	Text TXTRecordMap
}

// Target returns the first address and the port, in the form accepted by
// client.Client.Connect.
func (e *Endpoint) Target() (string, int, error) {
	if len(e.Addrs) == 0 || e.Port == 0 {
		return "", 0, ErrNoAddress
	}
	return e.Addrs[0].String(), int(e.Port), nil
}

// AddrPort returns the first address and the port.
func (e *Endpoint) AddrPort() (netip.AddrPort, error) {
	if len(e.Addrs) == 0 || e.Port == 0 {
		return netip.AddrPort{}, ErrNoAddress
	}
	return netip.AddrPortFrom(e.Addrs[0], e.Port), nil
}
