package bgp

import (
	"net/netip"
	"sync"
)

// LocRib is the single, shared routing table for this speaker
// (SPEC_FULL.md §4.6). It wraps a RIB with the local AS number and a
// RouteTable used both to seed the table at startup and to push newly
// learned routes down into the kernel's forwarding table.
type LocRib struct {
	mu      sync.Mutex
	rib     *RIB
	localAS uint16
	localIP netip.Addr
	kernel  RouteTable
	log     Logger
	metrics Metrics
	epoch   uint64
}

// NewLocRib constructs a LocRib, seeding it from the kernel's current IPv4
// routing table: every kernel route whose destination exactly matches one
// of networks is retained, wrapped in synthesized path attributes
// (Origin=Igp, AsPath=empty AS_SEQUENCE, NextHop=localIP) per
// SPEC_FULL.md §4.6.
func NewLocRib(localAS uint16, localIP netip.Addr, kernel RouteTable, networks []Ipv4Network, log Logger, metrics Metrics) (*LocRib, error) {
	l := &LocRib{
		rib:     NewRIB(),
		localAS: localAS,
		localIP: localIP,
		kernel:  kernel,
		log:     orNilLogger(log),
		metrics: orNilMetrics(metrics),
	}

	routes, err := kernel.ListIPv4Routes()
	if err != nil {
		return nil, err
	}

	wanted := make(map[Ipv4Network]bool, len(networks))
	for _, n := range networks {
		wanted[n] = true
	}

	attrs := PathAttributes{
		Origin:  OriginIGP,
		AsPath:  AsPath{Segments: []AsPathSegment{{Type: AsSequence}}},
		NextHop: localIP,
	}

	for _, r := range routes {
		if wanted[r.Network] {
			l.rib.Insert(Entry{Network: r.Network, Attributes: attrs})
		}
	}
	l.rib.UpdateToAllChanged()

	return l, nil
}

// Insert adds e to the Loc-RIB if not already present, advancing the
// Loc-RIB's change epoch whenever it actually does so.
func (l *LocRib) Insert(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rib.Insert(e) {
		l.epoch++
	}
}

// Epoch returns a counter that advances every time an entry is actually
// added to the Loc-RIB. Unlike HasNew, it is unaffected by WriteToKernel
// clearing StatusNew, so the supervisor can reliably detect a change made
// since it last looked, even one already written to the kernel
// (SPEC_FULL.md §4.7).
func (l *LocRib) Epoch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.epoch
}

// Entries returns a snapshot of every entry currently held.
func (l *LocRib) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rib.Entries()
}

// HasNew reports whether any entry is currently marked StatusNew.
func (l *LocRib) HasNew() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rib.HasNew()
}

// WriteToKernel installs every StatusNew entry into the kernel routing
// table and marks the ones that succeeded StatusUnchanged. A failed
// install is logged and counted but does not abort the remaining
// installs, and the entry is left StatusNew so it is retried the next
// time WriteToKernel runs (SPEC_FULL.md §4.6, §7).
func (l *LocRib) WriteToKernel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var installed []Entry
	for _, e := range l.rib.New() {
		if err := l.kernel.InstallIPv4Route(e.Network, e.Attributes.NextHop); err != nil {
			l.log.Warnw("kernel route install failed",
				"network", e.Network.String(),
				"error", err.Error(),
			)
			l.metrics.KernelInstallFailure()
			continue
		}
		installed = append(installed, e)
	}
	l.rib.MarkUnchanged(installed)
}

// LocalAS returns the local autonomous system number this Loc-RIB was
// constructed with.
func (l *LocRib) LocalAS() uint16 {
	return l.localAS
}
