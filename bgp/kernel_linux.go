package bgp

import (
	"net"
	"net/netip"

	"github.com/vishvananda/netlink"
)

// NetlinkRouteTable is the production RouteTable, backed by
// github.com/vishvananda/netlink (SPEC_FULL.md §4.6): RouteList backs
// listing, and RouteReplace -- already an idempotent upsert -- backs
// installation.
type NetlinkRouteTable struct{}

// NewNetlinkRouteTable returns a RouteTable that reads and writes the
// kernel's main IPv4 routing table.
func NewNetlinkRouteTable() *NetlinkRouteTable {
	return &NetlinkRouteTable{}
}

func (NetlinkRouteTable) ListIPv4Routes() ([]Route, error) {
	routes, err := netlink.RouteList(nil, netlink.FAMILY_V4)
	if err != nil {
		return nil, err
	}

	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		if r.Dst == nil || r.Dst.IP == nil {
			continue
		}
		addr, ok := netip.AddrFromSlice(r.Dst.IP.To4())
		if !ok {
			continue
		}
		ones, _ := r.Dst.Mask.Size()
		network, err := NewIpv4Network(addr, uint8(ones))
		if err != nil {
			continue
		}

		var gw netip.Addr
		if r.Gw != nil {
			if g, ok := netip.AddrFromSlice(r.Gw.To4()); ok {
				gw = g
			}
		}

		out = append(out, Route{Network: network, Gateway: gw})
	}
	return out, nil
}

func (NetlinkRouteTable) InstallIPv4Route(network Ipv4Network, gateway netip.Addr) error {
	a := network.Addr.As4()
	route := &netlink.Route{
		Dst: &net.IPNet{
			IP:   net.IPv4(a[0], a[1], a[2], a[3]),
			Mask: net.CIDRMask(int(network.Prefix), 32),
		},
		Gw: net.IP(gateway.AsSlice()),
	}
	return netlink.RouteReplace(route)
}
