package bgp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigValidLine(t *testing.T) {
	cfg, err := ParseConfig("65001 10.0.0.1 65002 10.0.0.2 active 10.1.0.0/24 10.2.0.0/24")
	require.NoError(t, err)

	assert.Equal(t, uint16(65001), cfg.LocalAS)
	assert.Equal(t, "10.0.0.1", cfg.LocalIP.String())
	assert.Equal(t, uint16(65002), cfg.RemoteAS)
	assert.Equal(t, "10.0.0.2", cfg.RemoteIP.String())
	assert.Equal(t, Active, cfg.Mode)
	assert.Len(t, cfg.Networks, 2)
}

func TestParseConfigPassiveModeCaseInsensitive(t *testing.T) {
	cfg, err := ParseConfig("65001 10.0.0.1 65002 10.0.0.2 Passive")
	require.NoError(t, err)
	assert.Equal(t, Passive, cfg.Mode)
	assert.Empty(t, cfg.Networks)
}

func TestParseConfigRejectsTooFewFields(t *testing.T) {
	_, err := ParseConfig("65001 10.0.0.1 65002")
	assert.Error(t, err)
	assert.IsType(t, &ConfigParseError{}, err)
}

func TestParseConfigRejectsBadAsNumber(t *testing.T) {
	_, err := ParseConfig("not-a-number 10.0.0.1 65002 10.0.0.2 active")
	assert.Error(t, err)
}

func TestParseConfigRejectsIpv6Address(t *testing.T) {
	_, err := ParseConfig("65001 ::1 65002 10.0.0.2 active")
	assert.Error(t, err)
}

func TestParseConfigRejectsBadMode(t *testing.T) {
	_, err := ParseConfig("65001 10.0.0.1 65002 10.0.0.2 sideways")
	assert.Error(t, err)
}

func TestParseConfigRejectsBadNetwork(t *testing.T) {
	_, err := ParseConfig("65001 10.0.0.1 65002 10.0.0.2 active not-a-cidr")
	assert.Error(t, err)
}
