package bgp

import "fmt"

// Peer is one BGP session task: its FSM state, its connection once
// established, its two Adj-RIBs, and a reference to the process-wide
// Loc-RIB it feeds and is fed by (SPEC_FULL.md §4.5).
type Peer struct {
	Config
	label string

	state State
	conn  *Connection
	queue *EventQueue

	adjIn  *AdjRibIn
	adjOut *AdjRibOut
	locRib *LocRib

	log     Logger
	metrics Metrics

	dead bool
	err  error
}

// NewPeer constructs a Peer in state Idle with ManualStart already queued,
// sharing locRib with every other configured peer.
func NewPeer(cfg Config, locRib *LocRib, log Logger, metrics Metrics) *Peer {
	p := &Peer{
		Config:  cfg,
		label:   fmt.Sprintf("%s:%d", cfg.RemoteIP, cfg.RemoteAS),
		state:   Idle,
		queue:   NewEventQueue(),
		adjIn:   NewAdjRibIn(cfg.LocalAS),
		adjOut:  NewAdjRibOut(cfg.LocalAS, cfg.RemoteAS),
		locRib:  locRib,
		log:     orNilLogger(log),
		metrics: orNilMetrics(metrics),
	}
	p.queue.Enqueue(Event{Kind: EventManualStart})
	return p
}

// State reports the peer's current FSM state.
func (p *Peer) State() State { return p.state }

// Dead reports whether the peer's session has been torn down.
func (p *Peer) Dead() bool { return p.dead }

// Err returns the error that killed the session, if any.
func (p *Peer) Err() error { return p.err }

// Next performs at most one event dispatch and one message read, then
// returns. This is the sole entry point the supervisor's round-robin loop
// calls (SPEC_FULL.md §4.7, §5).
func (p *Peer) Next() {
	if p.dead {
		return
	}

	if e, ok := p.queue.Dequeue(); ok {
		p.handleEvent(e)
	}
	if p.dead {
		return
	}

	if p.conn == nil {
		return
	}

	msg, err := p.conn.NextMessage()
	if err != nil {
		if err == ErrNeedMoreData {
			return
		}
		p.fail(err)
		return
	}

	ev, ok := p.translate(msg)
	if !ok {
		p.fail(fmt.Errorf("unexpected message %T in state %s", msg, p.state))
		return
	}
	p.handleEvent(ev)
}

// translate maps a received message to the event the FSM should dispatch,
// reporting ok=false if the message is not one the current state accepts
// (which is session-fatal per SPEC_FULL.md §4.5).
func (p *Peer) translate(msg Message) (Event, bool) {
	if _, isNotification := msg.(Notification); isNotification {
		return Event{}, false
	}

	switch p.state {
	case OpenSent:
		if _, ok := msg.(Open); ok {
			return Event{Kind: EventBgpOpen, Msg: msg}, true
		}
		return Event{}, false

	case OpenConfirm:
		if _, ok := msg.(Keepalive); ok {
			return Event{Kind: EventKeepAliveMsg, Msg: msg}, true
		}
		return Event{}, false

	case Established:
		switch msg.(type) {
		case Keepalive:
			return Event{Kind: EventKeepAliveMsg, Msg: msg}, true
		case Update:
			return Event{Kind: EventUpdateMsg, Msg: msg}, true
		default:
			return Event{}, false
		}

	default:
		return Event{}, false
	}
}

func (p *Peer) handleEvent(e Event) {
	switch {
	case p.state == Idle && e.Kind == EventManualStart:
		p.doManualStart()

	case p.state == Connect && e.Kind == EventTcpConnectionConfirmed:
		p.doSendOpen()

	case p.state == OpenSent && e.Kind == EventBgpOpen:
		p.doSendKeepalive()

	case p.state == OpenConfirm && e.Kind == EventKeepAliveMsg:
		p.queue.Enqueue(Event{Kind: EventEstablished})
		p.state = Established
		p.log.Infow("session established", "peer", p.label)
		p.metrics.SessionEstablished(p.label)
		p.metrics.PeerState(p.label, p.state)

	case p.state == Established && (e.Kind == EventEstablished || e.Kind == EventLocRibChanged):
		p.doRebuildAdjOut()

	case p.state == Established && e.Kind == EventAdjRibOutChanged:
		p.doEmitUpdates()

	case p.state == Established && e.Kind == EventUpdateMsg:
		p.doApplyUpdate(e.Msg.(Update))

	case p.state == Established && e.Kind == EventAdjRibInChanged:
		p.doCopyToLocRib()

	default:
		// All other (state, event) pairs are silently ignored.
	}
}

func (p *Peer) doManualStart() {
	var conn *Connection
	var err error
	if p.Mode == Active {
		conn, err = Dial(p.LocalIP, p.RemoteIP)
	} else {
		conn, err = Listen(p.LocalIP)
	}
	if err != nil {
		p.fail(err)
		return
	}
	p.conn = conn
	p.state = Connect
	p.log.Infow("tcp connection established", "peer", p.label, "mode", p.Mode.String())
	p.metrics.PeerState(p.label, p.state)
	p.queue.Enqueue(Event{Kind: EventTcpConnectionConfirmed})
}

func (p *Peer) doSendOpen() {
	open := Open{
		Version:    4,
		MyAS:       p.LocalAS,
		HoldTime:   0,
		Identifier: p.LocalIP,
	}
	if err := p.conn.Send(open); err != nil {
		p.fail(err)
		return
	}
	p.state = OpenSent
	p.log.Debugw("sent OPEN", "peer", p.label)
	p.metrics.PeerState(p.label, p.state)
}

func (p *Peer) doSendKeepalive() {
	if err := p.conn.Send(Keepalive{}); err != nil {
		p.fail(err)
		return
	}
	p.state = OpenConfirm
	p.log.Debugw("sent KEEPALIVE", "peer", p.label)
	p.metrics.PeerState(p.label, p.state)
}

func (p *Peer) doRebuildAdjOut() {
	p.adjOut.RebuildFromLocRib(p.locRib.Entries())
	if p.adjOut.HasNew() {
		p.queue.Enqueue(Event{Kind: EventAdjRibOutChanged})
	}
	p.adjOut.UpdateToAllChanged()
}

func (p *Peer) doEmitUpdates() {
	for _, entry := range p.adjOut.Entries() {
		attrs := entry.Attributes
		attrs.Origin = OriginIGP
		attrs.NextHop = p.LocalIP
		u := Update{
			Attributes: attrs,
			NLRI:       []Ipv4Network{entry.Network},
		}
		if err := p.conn.Send(u); err != nil {
			p.fail(err)
			return
		}
		p.metrics.UpdateSent(p.label)
	}
}

func (p *Peer) doApplyUpdate(u Update) {
	p.metrics.UpdateReceived(p.label)
	if p.adjIn.ApplyUpdate(u) {
		p.queue.Enqueue(Event{Kind: EventAdjRibInChanged})
	}
	p.adjIn.UpdateToAllChanged()
}

func (p *Peer) doCopyToLocRib() {
	for _, e := range p.adjIn.Entries() {
		p.locRib.Insert(e)
	}
	if p.locRib.HasNew() {
		p.locRib.WriteToKernel()
		p.queue.Enqueue(Event{Kind: EventLocRibChanged})
	}
}

func (p *Peer) fail(err error) {
	p.dead = true
	p.err = err
	p.log.Errorw("session terminated", "peer", p.label, "error", err.Error())
	if p.conn != nil {
		p.conn.Close()
	}
}
