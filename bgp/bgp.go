// Package bgp implements a minimal BGP-4 speaker: wire codec, per-peer
// session automaton, and the RIB pipeline that feeds the kernel's IPv4
// forwarding table.
//
// https://datatracker.ietf.org/doc/html/rfc4271 - A Border Gateway Protocol 4 (BGP-4)
package bgp

func htons(h uint16) [2]byte {
	return [2]byte{byte(h >> 8), byte(h)}
}

func ntohs(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// Message types (common header, byte 18).
const (
	MsgOpen         uint8 = 1
	MsgUpdate       uint8 = 2
	MsgNotification uint8 = 3
	MsgKeepalive    uint8 = 4
)

// Origin values (ORIGIN path attribute).
const (
	OriginIGP        uint8 = 0
	OriginEGP        uint8 = 1
	OriginIncomplete uint8 = 2
)

// AS_PATH segment types.
const (
	AsSet      uint8 = 1
	AsSequence uint8 = 2
)

// Path attribute type codes.
const (
	AttrOrigin  uint8 = 1
	AttrAsPath  uint8 = 2
	AttrNextHop uint8 = 3
)

// Path attribute flag bits (RFC 4271 §4.3).
const (
	FlagOptional       uint8 = 1 << 7
	FlagTransitive     uint8 = 1 << 6
	FlagPartial        uint8 = 1 << 5
	FlagExtendedLength uint8 = 1 << 4
)

// NOTIFICATION error codes and subcodes. This core never originates a
// NOTIFICATION (see the open question in SPEC_FULL.md §9) but decodes and
// reports one if the remote peer sends it.
const (
	ErrMessageHeader  uint8 = 1
	ErrOpen           uint8 = 2
	ErrUpdate         uint8 = 3
	ErrHoldTimerExp   uint8 = 4
	ErrFSM            uint8 = 5
	ErrCease          uint8 = 6
	SubBadMessageType uint8 = 3

	SubUnsupportedVersion uint8 = 1
	SubBadBgpID           uint8 = 3
	SubUnacceptableHold   uint8 = 6

	SubAdministrativeShutdown uint8 = 2
)

const (
	headerLength = 19
	markerLength = 16
	minLength    = 19
	maxLength    = 4096
	bgpPort      = 179
)

var marker = [markerLength]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}
