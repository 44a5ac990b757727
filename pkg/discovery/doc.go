// Package discovery resolves stream endpoints advertised over mDNS/DNS-SD.
//
// A stream server advertises a service instance such as
// "sensor-1._pollstream._tcp.local." carrying its port and addresses.
// Resolve browses for the service type and returns the first instance that
// matches, with its addresses ordered IPv4 first. The endpoint's Target is
// ready to pass to client.Client.Connect, which only accepts IP literals.
package discovery
