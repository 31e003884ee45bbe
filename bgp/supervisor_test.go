package bgp

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSupervisorFansOutLocRibChangeToOtherPeer reproduces the architecture
// the bug report concerns: one Supervisor owning a single shared LocRib
// across two of its own peers (p1, p3), each talking to its own remote
// neighbor (r1, r3, modeled as ordinary Peers with their own LocRibs). A
// route r1 advertises to p1 must reach the shared LocRib and, from there,
// fan out through the Supervisor to p3 so it gets re-advertised to r3 --
// even though p1's own doCopyToLocRib/WriteToKernel call already clears
// HasNew on the shared LocRib within the same tick.
func TestSupervisorFansOutLocRibChangeToOtherPeer(t *testing.T) {
	p1Conn, r1Conn := pairedConnections(t)
	defer p1Conn.Close()
	defer r1Conn.Close()
	p3Conn, r3Conn := pairedConnections(t)
	defer p3Conn.Close()
	defer r3Conn.Close()

	ourIP := netip.MustParseAddr("10.0.0.1")
	r1IP := netip.MustParseAddr("10.0.0.2")
	r3IP := netip.MustParseAddr("10.0.0.3")
	advertised := mustNetwork(t, "10.9.0.0/24")

	sharedLocRib, err := NewLocRib(65000, ourIP, NewMemoryRouteTable(), nil, nil, Metrics{})
	require.NoError(t, err)

	r1Kernel := NewMemoryRouteTable(Route{Network: advertised, Gateway: r1IP})
	r1LocRib, err := NewLocRib(65001, r1IP, r1Kernel, []Ipv4Network{advertised}, nil, Metrics{})
	require.NoError(t, err)

	r3LocRib, err := NewLocRib(65003, r3IP, NewMemoryRouteTable(), nil, nil, Metrics{})
	require.NoError(t, err)

	p1 := startedPeer(Config{LocalAS: 65000, LocalIP: ourIP, RemoteAS: 65001, RemoteIP: r1IP, Mode: Active}, p1Conn, sharedLocRib)
	p3 := startedPeer(Config{LocalAS: 65000, LocalIP: ourIP, RemoteAS: 65003, RemoteIP: r3IP, Mode: Active}, p3Conn, sharedLocRib)
	r1 := startedPeer(Config{LocalAS: 65001, LocalIP: r1IP, RemoteAS: 65000, RemoteIP: ourIP, Mode: Passive}, r1Conn, r1LocRib)
	r3 := startedPeer(Config{LocalAS: 65003, LocalIP: r3IP, RemoteAS: 65000, RemoteIP: ourIP, Mode: Passive}, r3Conn, r3LocRib)

	ours := NewSupervisor(sharedLocRib, time.Hour, nil)
	ours.AddPeer(p1)
	ours.AddPeer(p3)

	remote1 := NewSupervisor(r1LocRib, time.Hour, nil)
	remote1.AddPeer(r1)

	remote3 := NewSupervisor(r3LocRib, time.Hour, nil)
	remote3.AddPeer(r3)

	stop := make(chan struct{})
	defer close(stop)
	go ours.Run(stop)
	go remote1.Run(stop)
	go remote3.Run(stop)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(r3LocRib.Entries()) > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	entries := r3LocRib.Entries()
	require.Len(t, entries, 1, "route learned by p1 must fan out via the shared LocRib to p3 and onward to r3")
	require.Equal(t, advertised, entries[0].Network)
}
