// Command bgpd runs a single BGP-4 session described entirely by its
// command-line arguments.
//
// Usage:
//
//	bgpd <local_as> <local_ip> <remote_as> <remote_ip> <active|passive> [network ...]
//
// Ambient settings (log level, metrics listen address, kernel retry
// interval) are sourced from the environment; see internal/settings.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/routenerd/bgpd/bgp"
	"github.com/routenerd/bgpd/internal/settings"
	"github.com/routenerd/bgpd/log"
	"github.com/routenerd/bgpd/metrics"
)

func main() {
	cfg, err := bgp.ParseConfig(strings.Join(os.Args[1:], " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sett, err := settings.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading settings:", err)
		os.Exit(1)
	}

	logger, err := log.New(sett.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	metrics.Register()
	go serveMetrics(sett.MetricsListen, logger)

	bgpMetrics := bgp.Metrics{
		PeerStateFunc: func(peer string, state bgp.State) {
			metrics.SetPeerState(peer, state.String())
		},
		SessionEstablishedFunc:   func(peer string) { metrics.SessionsEstablishedTotal.WithLabelValues(peer).Inc() },
		UpdateSentFunc:           func(peer string) { metrics.UpdatesSentTotal.WithLabelValues(peer).Inc() },
		UpdateReceivedFunc:       func(peer string) { metrics.UpdatesReceivedTotal.WithLabelValues(peer).Inc() },
		KernelInstallFailureFunc: func() { metrics.KernelInstallFailuresTotal.WithLabelValues().Inc() },
	}

	kernel := bgp.NewNetlinkRouteTable()

	locRib, err := bgp.NewLocRib(cfg.LocalAS, cfg.LocalIP, kernel, cfg.Networks, logger, bgpMetrics)
	if err != nil {
		logger.Errorw("loc-rib initialization failed", "error", err.Error())
		os.Exit(1)
	}

	supervisor := bgp.NewSupervisor(locRib, sett.KernelRetryInterval, logger)
	supervisor.AddPeer(bgp.NewPeer(cfg, locRib, logger, bgpMetrics))

	logger.Infow("bgpd starting",
		"local_as", cfg.LocalAS,
		"remote_as", cfg.RemoteAS,
		"remote_ip", cfg.RemoteIP.String(),
		"mode", cfg.Mode.String(),
	)

	supervisor.Run(nil)
}

func serveMetrics(addr string, logger *log.Zap) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger.Infow("metrics listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Errorw("metrics server stopped", "error", err.Error())
	}
}
