package bgp

import (
	"net/netip"
	"strconv"
	"strings"
)

// Config is one peer's configuration, parsed from a single line of
// whitespace-separated tokens: local_as local_ip remote_as remote_ip mode
// [network ...] (SPEC_FULL.md §6).
type Config struct {
	LocalAS  uint16
	LocalIP  netip.Addr
	RemoteAS uint16
	RemoteIP netip.Addr
	Mode     Mode
	Networks []Ipv4Network
}

// ParseConfig parses a peer configuration line. Any malformed token fails
// the whole line with ConfigParseError.
func ParseConfig(line string) (Config, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Config{}, &ConfigParseError{Reason: "expected at least 5 fields: local_as local_ip remote_as remote_ip mode"}
	}

	localAS, err := parseAS(fields[0])
	if err != nil {
		return Config{}, err
	}
	localIP, err := parseIPv4(fields[1])
	if err != nil {
		return Config{}, err
	}
	remoteAS, err := parseAS(fields[2])
	if err != nil {
		return Config{}, err
	}
	remoteIP, err := parseIPv4(fields[3])
	if err != nil {
		return Config{}, err
	}
	mode, err := parseMode(fields[4])
	if err != nil {
		return Config{}, err
	}

	networks := make([]Ipv4Network, 0, len(fields)-5)
	for _, tok := range fields[5:] {
		n, err := parseNetwork(tok)
		if err != nil {
			return Config{}, err
		}
		networks = append(networks, n)
	}

	return Config{
		LocalAS:  localAS,
		LocalIP:  localIP,
		RemoteAS: remoteAS,
		RemoteIP: remoteIP,
		Mode:     mode,
		Networks: networks,
	}, nil
}

func parseAS(tok string) (uint16, error) {
	n, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return 0, &ConfigParseError{Reason: "invalid AS number: " + tok}
	}
	return uint16(n), nil
}

func parseIPv4(tok string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(tok)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, &ConfigParseError{Reason: "invalid IPv4 address: " + tok}
	}
	return addr, nil
}

func parseMode(tok string) (Mode, error) {
	switch strings.ToLower(tok) {
	case "active":
		return Active, nil
	case "passive":
		return Passive, nil
	default:
		return 0, &ConfigParseError{Reason: "invalid mode (want active or passive): " + tok}
	}
}

func parseNetwork(tok string) (Ipv4Network, error) {
	prefix, err := netip.ParsePrefix(tok)
	if err != nil || !prefix.Addr().Is4() {
		return Ipv4Network{}, &ConfigParseError{Reason: "invalid network (want a.b.c.d/p): " + tok}
	}
	n, err := NewIpv4Network(prefix.Addr(), uint8(prefix.Bits()))
	if err != nil {
		return Ipv4Network{}, &ConfigParseError{Reason: err.Error()}
	}
	return n, nil
}
