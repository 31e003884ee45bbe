package bgp

import "time"

// tickInterval bounds how often the round-robin scheduler visits every
// peer; it is not a protocol timer, only a scheduling fairness knob
// (SPEC_FULL.md §4.7, §5).
const tickInterval = 10 * time.Millisecond

// Supervisor is the single-process round-robin scheduler owning every
// configured peer and the one process-wide Loc-RIB.
type Supervisor struct {
	LocRib              *LocRib
	KernelRetryInterval time.Duration

	peers        []*Peer
	log          Logger
	lastKernelAt time.Time
	lastEpoch    uint64
}

// NewSupervisor constructs a Supervisor around an already-seeded LocRib.
// retryInterval governs how often a failed kernel install is retried
// (BGPD_KERNEL_RETRY_INTERVAL, SPEC_FULL.md §6); it has no bearing on the
// peer FSM or wire behavior.
func NewSupervisor(locRib *LocRib, retryInterval time.Duration, log Logger) *Supervisor {
	return &Supervisor{LocRib: locRib, KernelRetryInterval: retryInterval, log: orNilLogger(log)}
}

// AddPeer registers a peer to be scheduled. Peers may be added before the
// run loop starts; adding peers once Run is underway is not supported.
func (s *Supervisor) AddPeer(p *Peer) {
	s.peers = append(s.peers, p)
}

// Run calls Next on every peer in turn, forever, sleeping tickInterval
// between ticks. It returns only if stop is closed.
func (s *Supervisor) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		if time.Since(s.lastKernelAt) >= s.KernelRetryInterval {
			s.LocRib.WriteToKernel()
			s.lastKernelAt = time.Now()
		}

		// Epoch, not HasNew, drives the fan-out: WriteToKernel above (or a
		// peer's own doCopyToLocRib during the previous tick) may have already
		// marked every new entry StatusUnchanged, but the epoch still
		// reflects that an insert happened since we last looked.
		epoch := s.LocRib.Epoch()
		locRibChanged := epoch != s.lastEpoch
		s.lastEpoch = epoch

		for _, p := range s.peers {
			if locRibChanged {
				p.EnqueueLocRibChanged()
			}
			p.Next()
		}

		time.Sleep(tickInterval)
	}
}

// EnqueueLocRibChanged notifies a peer that the shared Loc-RIB changed.
// This is the one piece of cross-peer wiring the supervisor performs,
// since Loc-RIB has no way to reach peer event queues on its own.
func (p *Peer) EnqueueLocRibChanged() {
	p.queue.Enqueue(Event{Kind: EventLocRibChanged})
}
