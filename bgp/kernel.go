package bgp

import "net/netip"

// Route is one entry read back from the kernel's IPv4 routing table.
type Route struct {
	Network Ipv4Network
	Gateway netip.Addr
}

// RouteTable is the kernel adapter named in SPEC_FULL.md §6: list the
// kernel's IPv4 routes, and install a route with a given gateway. Install is
// required to be idempotent -- reinstalling an identical route is a no-op,
// not an error.
type RouteTable interface {
	ListIPv4Routes() ([]Route, error)
	InstallIPv4Route(network Ipv4Network, gateway netip.Addr) error
}

// MemoryRouteTable is an in-memory RouteTable, used by tests and by
// development on platforms without a netlink-equivalent socket.
type MemoryRouteTable struct {
	Routes []Route
}

// NewMemoryRouteTable seeds a table with the given routes, as if they were
// already present in the kernel at startup.
func NewMemoryRouteTable(seed ...Route) *MemoryRouteTable {
	return &MemoryRouteTable{Routes: append([]Route(nil), seed...)}
}

func (t *MemoryRouteTable) ListIPv4Routes() ([]Route, error) {
	return append([]Route(nil), t.Routes...), nil
}

func (t *MemoryRouteTable) InstallIPv4Route(network Ipv4Network, gateway netip.Addr) error {
	for i, r := range t.Routes {
		if r.Network == network {
			t.Routes[i].Gateway = gateway
			return nil
		}
	}
	t.Routes = append(t.Routes, Route{Network: network, Gateway: gateway})
	return nil
}
