// Package metrics defines the process's Prometheus collectors and exposes
// them on an HTTP listener (SPEC_FULL.md §6).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PeerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bgpd_peer_state",
			Help: "One-hot FSM state per peer.",
		},
		[]string{"peer", "state"},
	)

	SessionsEstablishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bgpd_sessions_established_total",
			Help: "Sessions that reached Established, by peer.",
		},
		[]string{"peer"},
	)

	UpdatesSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bgpd_updates_sent_total",
			Help: "UPDATE messages sent, by peer.",
		},
		[]string{"peer"},
	)

	UpdatesReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bgpd_updates_received_total",
			Help: "UPDATE messages received, by peer.",
		},
		[]string{"peer"},
	)

	KernelInstallFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bgpd_kernel_install_failures_total",
			Help: "Kernel FIB install attempts that failed.",
		},
		[]string{},
	)
)

// Register adds every collector to the default Prometheus registry. Call
// once at process startup.
func Register() {
	prometheus.MustRegister(
		PeerState,
		SessionsEstablishedTotal,
		UpdatesSentTotal,
		UpdatesReceivedTotal,
		KernelInstallFailuresTotal,
	)
}

// Handler serves the process's Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

var peerStates = []string{"Idle", "Connect", "OpenSent", "OpenConfirm", "Established"}

// SetPeerState sets the one-hot bgpd_peer_state gauge for peer: 1 for the
// current state, 0 for every other.
func SetPeerState(peer, state string) {
	for _, s := range peerStates {
		v := 0.0
		if s == state {
			v = 1.0
		}
		PeerState.WithLabelValues(peer, s).Set(v)
	}
}
