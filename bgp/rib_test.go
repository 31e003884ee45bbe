package bgp

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(t *testing.T, cidr string, asn uint16) Entry {
	t.Helper()
	prefix := netip.MustParsePrefix(cidr)
	n, err := NewIpv4Network(prefix.Addr(), uint8(prefix.Bits()))
	require.NoError(t, err)
	return Entry{
		Network: n,
		Attributes: PathAttributes{
			Origin:  OriginIGP,
			AsPath:  AsPath{Segments: []AsPathSegment{{Type: AsSequence, Asns: []uint16{asn}}}},
			NextHop: netip.MustParseAddr("10.0.0.1"),
		},
	}
}

func TestRibInsertMarksNew(t *testing.T) {
	r := NewRIB()
	e := testEntry(t, "10.1.0.0/24", 65001)
	r.Insert(e)

	assert.Equal(t, 1, r.Len())
	assert.True(t, r.HasNew())
	assert.Len(t, r.New(), 1)
}

func TestRibInsertDuplicateIsNoop(t *testing.T) {
	r := NewRIB()
	e := testEntry(t, "10.1.0.0/24", 65001)
	r.Insert(e)
	r.UpdateToAllChanged()
	r.Insert(e)

	assert.False(t, r.HasNew())
	assert.Equal(t, 1, r.Len())
}

func TestRibDistinctAttributesForSamePrefixCoexist(t *testing.T) {
	r := NewRIB()
	r.Insert(testEntry(t, "10.1.0.0/24", 65001))
	r.Insert(testEntry(t, "10.1.0.0/24", 65002))

	assert.Equal(t, 2, r.Len())
}

func TestRibUpdateToAllChanged(t *testing.T) {
	r := NewRIB()
	r.Insert(testEntry(t, "10.1.0.0/24", 65001))
	r.UpdateToAllChanged()

	assert.False(t, r.HasNew())
	assert.Empty(t, r.New())
	assert.Len(t, r.Entries(), 1)
}

func TestRibMarkUnchangedLeavesOthersNew(t *testing.T) {
	r := NewRIB()
	a := testEntry(t, "10.1.0.0/24", 65001)
	b := testEntry(t, "10.2.0.0/24", 65002)
	r.Insert(a)
	r.Insert(b)

	r.MarkUnchanged([]Entry{a})

	assert.Len(t, r.New(), 1)
	assert.Equal(t, b.Network, r.New()[0].Network)
}
