package bgp

import (
	"fmt"
	"net/netip"
)

// Ipv4Network is an (address, prefix-length) pair, 0 <= Prefix <= 32. Host
// bits beyond Prefix are always canonically zero.
type Ipv4Network struct {
	Addr   netip.Addr // always an Is4 address
	Prefix uint8
}

// NewIpv4Network masks addr down to Prefix bits, so the stored address is
// always in canonical form regardless of what the caller passed in.
func NewIpv4Network(addr netip.Addr, prefix uint8) (Ipv4Network, error) {
	if !addr.Is4() {
		return Ipv4Network{}, fmt.Errorf("not an ipv4 address: %s", addr)
	}
	if prefix > 32 {
		return Ipv4Network{}, fmt.Errorf("prefix out of range: %d", prefix)
	}
	return Ipv4Network{Addr: netip.AddrFrom4(maskToPrefix(addr.As4(), prefix)), Prefix: prefix}, nil
}

func maskToPrefix(a [4]byte, prefix uint8) [4]byte {
	var out [4]byte
	full := prefix / 8
	rem := prefix % 8
	copy(out[:full], a[:full])
	if rem > 0 && int(full) < 4 {
		out[full] = a[full] & (0xff << (8 - rem))
	}
	return out
}

func (n Ipv4Network) String() string {
	return fmt.Sprintf("%s/%d", n.Addr, n.Prefix)
}

// EncodedLen returns the number of bytes NLRI encoding occupies: the
// prefix-length byte plus ceil(prefix/8) address octets.
func (n Ipv4Network) EncodedLen() int {
	return 1 + octetsForPrefix(n.Prefix)
}

func octetsForPrefix(prefix uint8) int {
	return (int(prefix) + 7) / 8
}

// EncodeNlri appends the wire form of n to dst and returns the result.
func EncodeNlri(dst []byte, n Ipv4Network) []byte {
	dst = append(dst, n.Prefix)
	a := n.Addr.As4()
	return append(dst, a[:octetsForPrefix(n.Prefix)]...)
}

// DecodeNlri reads one Ipv4Network from the front of buf and returns it
// along with the number of bytes consumed. It fails with MalformedNlriError
// if the prefix is out of range or buf is too short for the declared prefix.
func DecodeNlri(buf []byte) (Ipv4Network, int, error) {
	if len(buf) < 1 {
		return Ipv4Network{}, 0, &MalformedNlriError{Reason: "empty buffer"}
	}
	prefix := buf[0]
	if prefix > 32 {
		return Ipv4Network{}, 0, &MalformedNlriError{Reason: fmt.Sprintf("prefix %d out of range", prefix)}
	}
	n := octetsForPrefix(prefix)
	if len(buf) < 1+n {
		return Ipv4Network{}, 0, &MalformedNlriError{Reason: "truncated prefix octets"}
	}
	var a [4]byte
	copy(a[:n], buf[1:1+n])
	net, err := NewIpv4Network(netip.AddrFrom4(a), prefix)
	if err != nil {
		return Ipv4Network{}, 0, &MalformedNlriError{Reason: err.Error()}
	}
	return net, 1 + n, nil
}

// DecodeNlriList decodes a run of back-to-back NLRIs totaling exactly
// length bytes, failing if the NLRIs do not exactly fill it.
func DecodeNlriList(buf []byte, length int) ([]Ipv4Network, error) {
	if length > len(buf) {
		return nil, &MalformedNlriError{Reason: "declared length exceeds buffer"}
	}
	remaining := buf[:length]
	var out []Ipv4Network
	for len(remaining) > 0 {
		n, used, err := DecodeNlri(remaining)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		remaining = remaining[used:]
	}
	return out, nil
}
