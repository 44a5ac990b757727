package discovery

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/enbility/zeroconf/v3"
)

func TestEntryToEndpoint(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		HostName: "sensor-1.local.",
		Port:     4242,
		Text:     []string{"fw=1.2", "debug"},
		AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
		AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
	}
	entry.Instance = "sensor-1"

	ep := entryToEndpoint(entry)

	if ep.Instance != "sensor-1" {
		t.Errorf("Instance = %q, want %q", ep.Instance, "sensor-1")
	}
	if ep.Host != "sensor-1.local." {
		t.Errorf("Host = %q", ep.Host)
	}
	if ep.Port != 4242 {
		t.Errorf("Port = %d, want 4242", ep.Port)
	}
	want := []netip.Addr{netip.MustParseAddr("10.0.0.5"), netip.MustParseAddr("fe80::1")}
	if len(ep.Addrs) != len(want) {
		t.Fatalf("Addrs = %v, want %v", ep.Addrs, want)
	}
	for i := range want {
		if ep.Addrs[i] != want[i] {
			t.Errorf("Addrs[%d] = %v, want %v", i, ep.Addrs[i], want[i])
		}
	}
	if ep.Text["fw"] != "1.2" {
		t.Errorf("Text[fw] = %q, want 1.2", ep.Text["fw"])
	}
	if v, ok := ep.Text["debug"]; !ok || v != "" {
		t.Errorf("Text[debug] = %q, %v", v, ok)
	}
}

func TestEndpointTarget(t *testing.T) {
	ep := &Endpoint{Port: 4242, Addrs: []netip.Addr{netip.MustParseAddr("10.0.0.5")}}

	host, port, err := ep.Target()
	if err != nil {
		t.Fatalf("Target() error = %v", err)
	}
	if host != "10.0.0.5" || port != 4242 {
		t.Errorf("Target() = %s, %d", host, port)
	}

	ap, err := ep.AddrPort()
	if err != nil {
		t.Fatalf("AddrPort() error = %v", err)
	}
	if ap.String() != "10.0.0.5:4242" {
		t.Errorf("AddrPort() = %v", ap)
	}

	empty := &Endpoint{Port: 4242}
	if _, _, err := empty.Target(); !errors.Is(err, ErrNoAddress) {
		t.Errorf("Target() on empty endpoint error = %v, want ErrNoAddress", err)
	}
	noPort := &Endpoint{Addrs: ep.Addrs}
	if _, err := noPort.AddrPort(); !errors.Is(err, ErrNoAddress) {
		t.Errorf("AddrPort() without port error = %v, want ErrNoAddress", err)
	}
}

func TestMergeAddrs(t *testing.T) {
	v4a := netip.MustParseAddr("10.0.0.5")
	v4b := netip.MustParseAddr("192.168.1.5")
	v6 := netip.MustParseAddr("fe80::1")

	got := mergeAddrs([]netip.Addr{v6, v4a}, []netip.Addr{v4a, v4b, v6})
	want := []netip.Addr{v4a, v4b, v6}

	if len(got) != len(want) {
		t.Fatalf("mergeAddrs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mergeAddrs()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTXTRecords(t *testing.T) {
	txt := StringsToTXTRecords([]string{"a=1", "b=x=y", "flag", ""})

	if len(txt) != 3 {
		t.Fatalf("len = %d, want 3: %v", len(txt), txt)
	}
	if txt["b"] != "x=y" {
		t.Errorf("b = %q, want x=y", txt["b"])
	}

	strs := TXTRecordsToStrings(txt)
	want := []string{"a=1", "b=x=y", "flag"}
	for i := range want {
		if strs[i] != want[i] {
			t.Errorf("strs[%d] = %q, want %q", i, strs[i], want[i])
		}
	}
}

func TestResolveHonorsContext(t *testing.T) {
	r := NewResolver(ResolverConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "_pollstream-test._tcp", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(ResolverConfig{})
	if r.config.Timeout != BrowseTimeout {
		t.Errorf("Timeout = %v, want %v", r.config.Timeout, BrowseTimeout)
	}
	if r.log == nil {
		t.Error("logger not set")
	}
}
