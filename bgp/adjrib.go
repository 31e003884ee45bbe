package bgp

// AdjRibIn holds routes learned from one peer via UPDATE messages, after
// inbound loop avoidance (SPEC_FULL.md §4.5): any NLRI whose AS_PATH
// already contains the local AS number is dropped rather than installed.
type AdjRibIn struct {
	rib     *RIB
	localAS uint16
}

// NewAdjRibIn returns an empty Adj-RIB-In for a peer of the local AS given.
func NewAdjRibIn(localAS uint16) *AdjRibIn {
	return &AdjRibIn{rib: NewRIB(), localAS: localAS}
}

// ApplyUpdate installs every route in u.NLRI that passes loop avoidance. It
// returns true if at least one route was newly installed.
func (a *AdjRibIn) ApplyUpdate(u Update) bool {
	installed := false
	for _, n := range u.NLRI {
		if u.Attributes.AsPath.Contains(a.localAS) {
			continue
		}
		if a.rib.Insert(Entry{Network: n, Attributes: u.Attributes}) {
			installed = true
		}
	}
	return installed
}

// New returns the entries installed since the last UpdateToAllChanged.
func (a *AdjRibIn) New() []Entry {
	return a.rib.New()
}

// Entries returns every entry currently held.
func (a *AdjRibIn) Entries() []Entry {
	return a.rib.Entries()
}

// UpdateToAllChanged marks every currently-New entry as Unchanged.
func (a *AdjRibIn) UpdateToAllChanged() {
	a.rib.UpdateToAllChanged()
}

// AdjRibOut holds the routes this speaker intends to advertise to one
// peer: a rebuild, on every Loc-RIB change, of the Loc-RIB filtered by
// outbound loop avoidance -- any route whose AS_PATH already contains the
// peer's own AS number is withheld, since advertising it back would only
// ever be rejected by that peer's own inbound check (SPEC_FULL.md §4.5).
type AdjRibOut struct {
	rib      *RIB
	remoteAS uint16
	localAS  uint16
}

// NewAdjRibOut returns an empty Adj-RIB-Out for a peer of remoteAS, this
// speaker being localAS.
func NewAdjRibOut(localAS, remoteAS uint16) *AdjRibOut {
	return &AdjRibOut{rib: NewRIB(), remoteAS: remoteAS, localAS: localAS}
}

// RebuildFromLocRib replaces the candidate set with every Loc-RIB entry
// that passes outbound loop avoidance, each advertised with the local AS
// prepended to its AS_PATH.
func (a *AdjRibOut) RebuildFromLocRib(entries []Entry) {
	fresh := NewRIB()
	for _, e := range entries {
		if e.Attributes.AsPath.Contains(a.remoteAS) {
			continue
		}
		out := e.Attributes
		out.AsPath = out.AsPath.Prepend(a.localAS)
		fresh.Insert(Entry{Network: e.Network, Attributes: out})
	}

	// Preserve status for entries that already existed so an unchanged
	// route isn't re-advertised as New.
	for k, e := range fresh.entries {
		if old, ok := a.rib.entries[k]; ok && old.Equal(e) {
			fresh.status[k] = a.rib.status[k]
		}
	}
	a.rib = fresh
}

// New returns the entries that became advertisable since the last
// UpdateToAllChanged.
func (a *AdjRibOut) New() []Entry {
	return a.rib.New()
}

// Entries returns every route currently advertisable to this peer.
func (a *AdjRibOut) Entries() []Entry {
	return a.rib.Entries()
}

// HasNew reports whether any entry is currently marked StatusNew.
func (a *AdjRibOut) HasNew() bool {
	return a.rib.HasNew()
}

// UpdateToAllChanged marks every currently-New entry as Unchanged.
func (a *AdjRibOut) UpdateToAllChanged() {
	a.rib.UpdateToAllChanged()
}
