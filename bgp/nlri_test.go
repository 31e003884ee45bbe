package bgp

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIpv4NetworkCanonicalizesHostBits(t *testing.T) {
	addr := netip.MustParseAddr("10.0.0.17")
	n, err := NewIpv4Network(addr, 24)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", n.String())
}

func TestNewIpv4NetworkRejectsNonIpv4(t *testing.T) {
	_, err := NewIpv4Network(netip.MustParseAddr("::1"), 24)
	assert.Error(t, err)
}

func TestNewIpv4NetworkRejectsPrefixOutOfRange(t *testing.T) {
	_, err := NewIpv4Network(netip.MustParseAddr("10.0.0.0"), 33)
	assert.Error(t, err)
}

func TestEncodeDecodeNlriRoundTrip(t *testing.T) {
	cases := []string{"0.0.0.0/0", "10.0.0.0/8", "192.168.1.0/24", "172.16.5.9/32"}
	for _, c := range cases {
		prefix := netip.MustParsePrefix(c)
		n, err := NewIpv4Network(prefix.Addr(), uint8(prefix.Bits()))
		require.NoError(t, err)

		buf := EncodeNlri(nil, n)
		assert.Equal(t, n.EncodedLen(), len(buf))

		got, used, err := DecodeNlri(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), used)
		assert.Equal(t, n, got)
	}
}

func TestDecodeNlriRejectsPrefixOutOfRange(t *testing.T) {
	_, _, err := DecodeNlri([]byte{33, 1, 2, 3, 4})
	assert.Error(t, err)
}

func TestDecodeNlriRejectsTruncatedBuffer(t *testing.T) {
	_, _, err := DecodeNlri([]byte{24, 10, 0})
	assert.Error(t, err)
}

func TestDecodeNlriListConsumesBackToBackEntries(t *testing.T) {
	a, _ := NewIpv4Network(netip.MustParseAddr("10.0.0.0"), 8)
	b, _ := NewIpv4Network(netip.MustParseAddr("192.168.1.0"), 24)

	var buf []byte
	buf = EncodeNlri(buf, a)
	buf = EncodeNlri(buf, b)

	got, err := DecodeNlriList(buf, len(buf))
	require.NoError(t, err)
	assert.Equal(t, []Ipv4Network{a, b}, got)
}
