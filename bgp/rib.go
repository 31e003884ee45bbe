package bgp

// RibEntryStatus marks whether an Entry has been observed by a consumer of
// the RIB yet.
type RibEntryStatus uint8

const (
	StatusNew RibEntryStatus = iota
	StatusUnchanged
)

// Entry is one routing information base entry: a prefix plus the
// (shared, immutable) attributes of the path to it. Two entries are equal
// iff both fields are equal, the attribute list compared structurally.
type Entry struct {
	Network    Ipv4Network
	Attributes PathAttributes
}

func (e Entry) Equal(o Entry) bool {
	return e.Network == o.Network && e.Attributes.Equal(o.Attributes)
}

// entryKey is a stable, hashable structural key for an Entry so the RIB can
// be backed by a plain Go map without needing Entry itself to be
// comparable (PathAttributes holds a slice).
type entryKey struct {
	network Ipv4Network
	origin  uint8
	nextHop [4]byte
	asPath  string
}

func keyOf(e Entry) entryKey {
	var asPath []byte
	for _, seg := range e.Attributes.AsPath.Segments {
		asPath = append(asPath, seg.Type, byte(len(seg.Asns)))
		for _, a := range seg.Asns {
			h := htons(a)
			asPath = append(asPath, h[0], h[1])
		}
	}
	return entryKey{
		network: e.Network,
		origin:  e.Attributes.Origin,
		nextHop: e.Attributes.NextHop.As4(),
		asPath:  string(asPath),
	}
}

// RIB is a mapping from Entry to RibEntryStatus. Insertion of an entry
// already present is a no-op that preserves its existing status; a fresh
// insertion always records StatusNew.
type RIB struct {
	entries map[entryKey]Entry
	status  map[entryKey]RibEntryStatus
}

// NewRIB returns an empty RIB.
func NewRIB() *RIB {
	return &RIB{
		entries: map[entryKey]Entry{},
		status:  map[entryKey]RibEntryStatus{},
	}
}

// Insert adds e if not already present, marking it New; a duplicate insert
// is a no-op and its existing status is left untouched. It reports whether
// e was actually added.
func (r *RIB) Insert(e Entry) bool {
	k := keyOf(e)
	if _, ok := r.entries[k]; ok {
		return false
	}
	r.entries[k] = e
	r.status[k] = StatusNew
	return true
}

// Entries returns every entry currently in the RIB.
func (r *RIB) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}

// New returns only the entries currently marked StatusNew.
func (r *RIB) New() []Entry {
	var out []Entry
	for k, e := range r.entries {
		if r.status[k] == StatusNew {
			out = append(out, e)
		}
	}
	return out
}

// HasNew reports whether any entry is currently marked StatusNew.
func (r *RIB) HasNew() bool {
	for _, s := range r.status {
		if s == StatusNew {
			return true
		}
	}
	return false
}

// UpdateToAllChanged transitions every StatusNew entry to StatusUnchanged.
func (r *RIB) UpdateToAllChanged() {
	for k, s := range r.status {
		if s == StatusNew {
			r.status[k] = StatusUnchanged
		}
	}
}

// MarkUnchanged transitions just the given entries to StatusUnchanged,
// leaving every other StatusNew entry untouched so it is retried later.
func (r *RIB) MarkUnchanged(entries []Entry) {
	for _, e := range entries {
		r.status[keyOf(e)] = StatusUnchanged
	}
}

// Len reports the number of distinct entries held.
func (r *RIB) Len() int {
	return len(r.entries)
}
