package bgp

import (
	"fmt"
	"net/netip"
)

// Message is implemented by every decoded BGP message type: Open,
// Keepalive, Update, Notification.
type Message interface {
	Type() uint8
	body() []byte
}

// Encode renders m with its 19-byte common header, ready to write to a
// connection.
func Encode(m Message) []byte {
	body := m.body()
	length := headerLength + len(body)
	out := make([]byte, 0, length)
	out = append(out, marker[:]...)
	l := htons(uint16(length))
	out = append(out, l[0], l[1], m.Type())
	out = append(out, body...)
	return out
}

// Decode parses one complete, header-framed BGP message. The caller (the
// framed Connection) is responsible for slicing exactly one message's worth
// of bytes out of the stream first.
func Decode(buf []byte) (Message, error) {
	if len(buf) < headerLength {
		return nil, &MalformedHeaderError{Reason: "short buffer"}
	}
	for i := 0; i < markerLength; i++ {
		if buf[i] != 0xff {
			return nil, &MalformedHeaderError{Reason: "marker is not all-ones"}
		}
	}
	length := int(ntohs(buf[16:18]))
	if length < minLength || length > maxLength {
		return nil, &MalformedHeaderError{Reason: fmt.Sprintf("length %d out of range", length)}
	}
	if length != len(buf) {
		return nil, &MalformedHeaderError{Reason: "length field does not match buffer"}
	}
	typ := buf[18]
	body := buf[headerLength:]

	switch typ {
	case MsgOpen:
		return decodeOpen(body)
	case MsgKeepalive:
		return decodeKeepalive(body)
	case MsgUpdate:
		return DecodeUpdate(body)
	case MsgNotification:
		return decodeNotification(body)
	default:
		return nil, &MalformedHeaderError{Reason: fmt.Sprintf("unknown message type %d", typ)}
	}
}

// Open is the OPEN message (RFC 4271 §4.2). This core always emits
// version 4 and an empty optional-parameters list (OptParamLen=0), but
// decodes and preserves whatever opt_params the peer sent without
// interpreting them.
type Open struct {
	Version    uint8
	MyAS       uint16
	HoldTime   uint16
	Identifier netip.Addr // always an Is4 address: the BGP identifier
	OptParams  []byte
}

func (Open) Type() uint8 { return MsgOpen }

func (o Open) body() []byte {
	out := make([]byte, 0, 10+len(o.OptParams))
	out = append(out, o.Version)
	as := htons(o.MyAS)
	out = append(out, as[0], as[1])
	ht := htons(o.HoldTime)
	out = append(out, ht[0], ht[1])
	id := o.Identifier.As4()
	out = append(out, id[:]...)
	out = append(out, byte(len(o.OptParams)))
	return append(out, o.OptParams...)
}

func decodeOpen(body []byte) (Message, error) {
	if len(body) < 10 {
		return nil, &MalformedOpenError{Reason: "short body"}
	}
	version := body[0]
	myAS := ntohs(body[1:3])
	holdTime := ntohs(body[3:5])
	id := netip.AddrFrom4([4]byte(body[5:9]))
	optLen := int(body[9])
	if len(body) < 10+optLen {
		return nil, &MalformedOpenError{Reason: "truncated optional parameters"}
	}
	opt := append([]byte(nil), body[10:10+optLen]...)
	return Open{Version: version, MyAS: myAS, HoldTime: holdTime, Identifier: id, OptParams: opt}, nil
}

// Keepalive carries no body.
type Keepalive struct{}

func (Keepalive) Type() uint8  { return MsgKeepalive }
func (Keepalive) body() []byte { return nil }

func decodeKeepalive(body []byte) (Message, error) {
	if len(body) != 0 {
		return nil, &MalformedHeaderError{Reason: "keepalive carries a body"}
	}
	return Keepalive{}, nil
}

// Notification is decoded so a session can log why a peer tore things down,
// but this core never originates one (see SPEC_FULL.md §9).
type Notification struct {
	Code    uint8
	Subcode uint8
	Data    []byte
}

func (Notification) Type() uint8 { return MsgNotification }

func (n Notification) body() []byte {
	out := []byte{n.Code, n.Subcode}
	return append(out, n.Data...)
}

func decodeNotification(body []byte) (Message, error) {
	if len(body) < 2 {
		return nil, &MalformedHeaderError{Reason: "short notification body"}
	}
	data := append([]byte(nil), body[2:]...)
	return Notification{Code: body[0], Subcode: body[1], Data: data}, nil
}
