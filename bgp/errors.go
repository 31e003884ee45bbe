package bgp

import "fmt"

// Error kinds, each with its own propagation policy (SPEC_FULL.md §7).
// ConfigParseError aborts the process at startup; the Malformed* kinds and
// ConnectFailed/SendFailed/ReceiveFailed are session-fatal and drop the
// peer; KernelInstallFailed is locally recovered.

type MalformedHeaderError struct{ Reason string }

func (e *MalformedHeaderError) Error() string { return "malformed header: " + e.Reason }

type MalformedNlriError struct{ Reason string }

func (e *MalformedNlriError) Error() string { return "malformed nlri: " + e.Reason }

type MalformedUpdateError struct{ Reason string }

func (e *MalformedUpdateError) Error() string { return "malformed update: " + e.Reason }

type MalformedOpenError struct{ Reason string }

func (e *MalformedOpenError) Error() string { return "malformed open: " + e.Reason }

type ConfigParseError struct{ Reason string }

func (e *ConfigParseError) Error() string { return "config parse error: " + e.Reason }

type ConnectFailedError struct {
	Peer   string
	Reason string
}

func (e *ConnectFailedError) Error() string {
	return fmt.Sprintf("connect failed to %s: %s", e.Peer, e.Reason)
}

type SendFailedError struct{ Reason string }

func (e *SendFailedError) Error() string { return "send failed: " + e.Reason }

type ReceiveFailedError struct{ Reason string }

func (e *ReceiveFailedError) Error() string { return "receive failed: " + e.Reason }

type KernelInstallFailedError struct {
	Network string
	Reason  string
}

func (e *KernelInstallFailedError) Error() string {
	return fmt.Sprintf("kernel install failed for %s: %s", e.Network, e.Reason)
}

// needMoreDataError signals the framed connection has an incomplete message
// buffered and the caller should try again once more bytes have arrived.
type needMoreDataError struct{}

func (needMoreDataError) Error() string { return "need more data" }

// ErrNeedMoreData is returned by Connection.NextMessage when the receive
// buffer does not yet hold a complete message.
var ErrNeedMoreData error = needMoreDataError{}
