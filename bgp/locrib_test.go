package bgp

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocRibSeedsOnlyConfiguredNetworks(t *testing.T) {
	configured := mustNetwork(t, "10.1.0.0/24")
	other := mustNetwork(t, "10.9.0.0/24")
	kernel := NewMemoryRouteTable(
		Route{Network: configured, Gateway: netip.MustParseAddr("10.0.0.254")},
		Route{Network: other, Gateway: netip.MustParseAddr("10.0.0.254")},
	)

	l, err := NewLocRib(65001, netip.MustParseAddr("10.0.0.1"), kernel, []Ipv4Network{configured}, nil, Metrics{})
	require.NoError(t, err)

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, configured, entries[0].Network)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), entries[0].Attributes.NextHop)
	assert.False(t, l.HasNew(), "seeded entries should start Unchanged")
}

func TestLocRibWriteToKernelInstallsNewEntries(t *testing.T) {
	kernel := NewMemoryRouteTable()
	l, err := NewLocRib(65001, netip.MustParseAddr("10.0.0.1"), kernel, nil, nil, Metrics{})
	require.NoError(t, err)

	e := testEntry(t, "10.5.0.0/24", 0)
	l.Insert(e)
	require.True(t, l.HasNew())

	l.WriteToKernel()

	assert.False(t, l.HasNew())
	routes, _ := kernel.ListIPv4Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, e.Network, routes[0].Network)
}

type failingRouteTable struct{}

func (failingRouteTable) ListIPv4Routes() ([]Route, error) { return nil, nil }
func (failingRouteTable) InstallIPv4Route(Ipv4Network, netip.Addr) error {
	return errors.New("boom")
}

func TestLocRibWriteToKernelLeavesFailedInstallsNew(t *testing.T) {
	l, err := NewLocRib(65001, netip.MustParseAddr("10.0.0.1"), failingRouteTable{}, nil, nil, Metrics{})
	require.NoError(t, err)

	e := testEntry(t, "10.5.0.0/24", 0)
	l.Insert(e)

	failures := 0
	l.metrics.KernelInstallFailureFunc = func() { failures++ }
	l.WriteToKernel()

	assert.Equal(t, 1, failures)
	assert.True(t, l.HasNew(), "a failed install must remain New so it is retried")
}
