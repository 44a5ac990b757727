package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"slices"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// Interface restricts browsing to one network interface.
	// Empty means all interfaces.
	Interface string

	// Timeout bounds Resolve when the context has no deadline
	// (default: BrowseTimeout).
	Timeout time.Duration

	// Logger receives operational logs (default: slog.Default()).
	Logger *slog.Logger
}

// Resolver looks up stream endpoints over mDNS.
type Resolver struct {
	config ResolverConfig
	log    *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(config ResolverConfig) *Resolver {
	if config.Timeout <= 0 {
		config.Timeout = BrowseTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Resolver{config: config, log: config.Logger}
}

// Browse streams endpoints of the given service type until ctx is done.
// Answers for the same instance from several interfaces are merged; an
// endpoint is sent again whenever it gains addresses.
func (r *Resolver) Browse(ctx context.Context, service string) (<-chan *Endpoint, error) {
	if service == "" {
		service = ServiceType
	}

	out := make(chan *Endpoint)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	gone := (<-chan *zeroconf.ServiceEntry)(removed)

	go func() {
		defer close(out)

		known := make(map[string]*Endpoint)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				ep := entryToEndpoint(entry)
				if existing, found := known[ep.Instance]; found {
					before := len(existing.Addrs)
					existing.Addrs = mergeAddrs(existing.Addrs, ep.Addrs)
					if len(existing.Addrs) == before {
						continue
					}
					ep = existing
				} else {
					known[ep.Instance] = ep
				}

				select {
				case out <- ep.clone():
				case <-ctx.Done():
					return
				}

			case entry, ok := <-gone:
				if !ok {
					gone = nil
					continue
				}
				delete(known, entry.Instance)

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		if err := zeroconf.Browse(ctx, service, Domain, entries, removed, r.options()...); err != nil {
			r.log.Debug("Browse: stopped", "service", service, "error", err)
		}
	}()

	return out, nil
}

// Resolve returns the first endpoint of the service type whose instance name
// equals instance, or any endpoint if instance is empty.
func (r *Resolver) Resolve(ctx context.Context, service, instance string) (*Endpoint, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results, err := r.Browse(ctx, service)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case ep, ok := <-results:
			if !ok {
				return nil, ErrNotFound
			}
			if instance != "" && ep.Instance != instance {
				continue
			}
			if len(ep.Addrs) == 0 {
				continue
			}
			r.log.Debug("Resolve: found", "instance", ep.Instance, "addr", ep.Addrs[0], "port", ep.Port)
			return ep, nil
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ctx.Err())
		}
	}
}

func (r *Resolver) options() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if r.config.Interface != "" {
		iface, err := net.InterfaceByName(r.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		} else {
			r.log.Warn("options: unknown interface", "interface", r.config.Interface, "error", err)
		}
	}
	return opts
}

// entryToEndpoint converts a zeroconf entry to an Endpoint.
func entryToEndpoint(entry *zeroconf.ServiceEntry) *Endpoint {
	addrs := make([]netip.Addr, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		if a, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, a.Unmap())
		}
	}
	for _, ip := range entry.AddrIPv6 {
		if a, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, a)
		}
	}

	return &Endpoint{
		Instance: entry.Instance,
		Host:     entry.HostName,
		Port:     uint16(entry.Port),
		Addrs:    addrs,
		Text:     StringsToTXTRecords(entry.Text),
	}
}

// mergeAddrs adds new addresses to existing, keeping IPv4 addresses first
// and dropping duplicates.
func mergeAddrs(existing, add []netip.Addr) []netip.Addr {
	seen := make(map[netip.Addr]bool, len(existing)+len(add))
	var v4, v6 []netip.Addr
	for _, a := range slices.Concat(existing, add) {
		if seen[a] {
			continue
		}
		seen[a] = true
		if a.Is4() {
			v4 = append(v4, a)
		} else {
			v6 = append(v6, a)
		}
	}
	return append(v4, v6...)
}

func (e *Endpoint) clone() *Endpoint {
	c := *e
	c.Addrs = append([]netip.Addr(nil), e.Addrs...)
	return &c
}
