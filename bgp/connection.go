package bgp

import (
	"errors"
	"io"
	"net"
	"net/netip"
	"time"
)

// Mode selects how a Connection is established: Active dials the remote
// peer; Passive listens for exactly one inbound connection.
type Mode uint8

const (
	Active Mode = iota
	Passive
)

func (m Mode) String() string {
	if m == Passive {
		return "passive"
	}
	return "active"
}

// pollInterval bounds how long a single NextMessage call blocks waiting for
// data before reporting ErrNeedMoreData; it is not a protocol timer.
const pollInterval = 10 * time.Millisecond

// Connection is exclusive ownership of one TCP stream plus an append-only
// receive buffer (SPEC_FULL.md §3, §4.3).
type Connection struct {
	conn net.Conn
	buf  []byte
}

// Dial establishes an active-mode connection to remote:179, optionally
// binding the local address first.
func Dial(local, remote netip.Addr) (*Connection, error) {
	dialer := net.Dialer{Timeout: 10 * time.Second}
	if local.IsValid() {
		dialer.LocalAddr = &net.TCPAddr{IP: net.IP(local.AsSlice())}
	}
	conn, err := dialer.Dial("tcp", netip.AddrPortFrom(remote, bgpPort).String())
	if err != nil {
		return nil, &ConnectFailedError{Peer: remote.String(), Reason: err.Error()}
	}
	return &Connection{conn: conn}, nil
}

// Listen binds local:179, accepts exactly one inbound connection, then
// stops listening (SPEC_FULL.md §4.3).
func Listen(local netip.Addr) (*Connection, error) {
	ln, err := net.Listen("tcp", netip.AddrPortFrom(local, bgpPort).String())
	if err != nil {
		return nil, &ConnectFailedError{Peer: local.String(), Reason: err.Error()}
	}
	defer ln.Close()

	conn, err := ln.Accept()
	if err != nil {
		return nil, &ConnectFailedError{Peer: local.String(), Reason: err.Error()}
	}
	return &Connection{conn: conn}, nil
}

// Send writes one fully encoded message atomically from the caller's
// perspective.
func (c *Connection) Send(m Message) error {
	data := Encode(m)
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := c.conn.Write(data); err != nil {
		return &SendFailedError{Reason: err.Error()}
	}
	return nil
}

// fill reads whatever is currently available into the receive buffer. It
// distinguishes a closed stream (io.EOF) from "no data available within
// pollInterval" (a read timeout, reported as nil error) -- the original
// lineage this core descends from conflated the two, tearing nothing down
// on EOF; this core treats EOF as ReceiveFailedError instead.
func (c *Connection) fill() error {
	c.conn.SetReadDeadline(time.Now().Add(pollInterval))
	buf := make([]byte, 4096)
	n, err := c.conn.Read(buf)
	if n > 0 {
		c.buf = append(c.buf, buf[:n]...)
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return &ReceiveFailedError{Reason: "connection closed"}
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return nil
	}
	return &ReceiveFailedError{Reason: err.Error()}
}

// NextMessage attempts to extract the next complete message from the
// stream. It returns ErrNeedMoreData if the buffer does not yet hold a
// whole message, or a decode error if the buffered bytes are malformed (in
// which case the session must be torn down; this component does not
// attempt resynchronization).
func (c *Connection) NextMessage() (Message, error) {
	if err := c.fill(); err != nil {
		return nil, err
	}

	if len(c.buf) < headerLength {
		return nil, ErrNeedMoreData
	}

	length := int(ntohs(c.buf[16:18]))
	if length < minLength || length > maxLength {
		return nil, &MalformedHeaderError{Reason: "length field out of range"}
	}
	if len(c.buf) < length {
		return nil, ErrNeedMoreData
	}

	msgBytes := c.buf[:length]
	rest := make([]byte, len(c.buf)-length)
	copy(rest, c.buf[length:])
	c.buf = rest

	return Decode(msgBytes)
}

// Close tears down the underlying TCP connection.
func (c *Connection) Close() error {
	return c.conn.Close()
}
