// Package settings sources ambient process settings from the environment,
// independent of the mandatory peer-line configuration (SPEC_FULL.md §6).
package settings

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Settings holds everything that tunes the daemon's operation without
// affecting wire behavior or the peer FSM.
type Settings struct {
	LogLevel            string        `koanf:"log_level"`
	MetricsListen       string        `koanf:"metrics_listen"`
	KernelRetryInterval time.Duration `koanf:"kernel_retry_interval"`
}

const envPrefix = "BGPD_"

// Load reads BGPD_-prefixed environment variables over top of defaults.
func Load() (Settings, error) {
	s := Settings{
		LogLevel:            "info",
		MetricsListen:       ":9179",
		KernelRetryInterval: 30 * time.Second,
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, envPrefix))
	}), nil); err != nil {
		return s, err
	}

	if v := k.String("log_level"); v != "" {
		s.LogLevel = v
	}
	if v := k.String("metrics_listen"); v != "" {
		s.MetricsListen = v
	}
	if v := k.String("kernel_retry_interval"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			s.KernelRetryInterval = d
		}
	}

	return s, nil
}
