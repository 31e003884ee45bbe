package bgp

import (
	"net/netip"
)

// AsPathSegment is one (type, [ASN]) run within an AS_PATH attribute.
type AsPathSegment struct {
	Type uint8 // AsSequence or AsSet
	Asns []uint16
}

// AsPath is an ordered list of segments. This core only ever emits a single
// AS_SEQUENCE segment, but decodes (and round-trips) whatever the peer sent.
type AsPath struct {
	Segments []AsPathSegment
}

// Contains reports whether asn appears anywhere in the path, which is the
// loop-avoidance test used by both Adj-RIB-In install and Adj-RIB-Out
// rebuild.
func (p AsPath) Contains(asn uint16) bool {
	for _, seg := range p.Segments {
		for _, a := range seg.Asns {
			if a == asn {
				return true
			}
		}
	}
	return false
}

// Prepend returns a copy of p with asn prepended to the leading segment if
// that segment is an AS_SEQUENCE, or in a new leading AS_SEQUENCE segment
// otherwise (p empty, or p starting with an AS_SET).
func (p AsPath) Prepend(asn uint16) AsPath {
	if len(p.Segments) == 0 || p.Segments[0].Type != AsSequence {
		segs := make([]AsPathSegment, 0, len(p.Segments)+1)
		segs = append(segs, AsPathSegment{Type: AsSequence, Asns: []uint16{asn}})
		segs = append(segs, p.Segments...)
		return AsPath{Segments: segs}
	}
	asns := make([]uint16, 0, len(p.Segments[0].Asns)+1)
	asns = append(asns, asn)
	asns = append(asns, p.Segments[0].Asns...)
	segs := make([]AsPathSegment, len(p.Segments))
	copy(segs, p.Segments)
	segs[0] = AsPathSegment{Type: AsSequence, Asns: asns}
	return AsPath{Segments: segs}
}

// Equal does a structural comparison, used for RIB entry equality.
func (p AsPath) Equal(o AsPath) bool {
	if len(p.Segments) != len(o.Segments) {
		return false
	}
	for i := range p.Segments {
		if p.Segments[i].Type != o.Segments[i].Type {
			return false
		}
		if len(p.Segments[i].Asns) != len(o.Segments[i].Asns) {
			return false
		}
		for j := range p.Segments[i].Asns {
			if p.Segments[i].Asns[j] != o.Segments[i].Asns[j] {
				return false
			}
		}
	}
	return true
}

// PathAttributes is the shared, immutable trio this core requires: Origin,
// AsPath, NextHop. Values are built as struct literals or decoded by
// DecodeAttributes (via DecodeUpdate).
type PathAttributes struct {
	Origin  uint8
	AsPath  AsPath
	NextHop netip.Addr
}

// Equal does a structural comparison of the three attributes.
func (a PathAttributes) Equal(o PathAttributes) bool {
	return a.Origin == o.Origin && a.AsPath.Equal(o.AsPath) && a.NextHop == o.NextHop
}

func encodeAttrHeader(dst []byte, flags, typ uint8, value []byte) []byte {
	if len(value) > 255 {
		flags |= FlagExtendedLength
		dst = append(dst, flags, typ, byte(len(value)>>8), byte(len(value)))
	} else {
		dst = append(dst, flags, typ, byte(len(value)))
	}
	return append(dst, value...)
}

// EncodeAttributes renders the three mandatory well-known attributes in
// Origin, AS_PATH, NextHop order, as RFC 4271 §5 requires.
func EncodeAttributes(dst []byte, attrs PathAttributes) []byte {
	dst = encodeAttrHeader(dst, FlagTransitive, AttrOrigin, []byte{attrs.Origin})

	var asPath []byte
	for _, seg := range attrs.AsPath.Segments {
		asPath = append(asPath, seg.Type, byte(len(seg.Asns)))
		for _, asn := range seg.Asns {
			h := htons(asn)
			asPath = append(asPath, h[0], h[1])
		}
	}
	dst = encodeAttrHeader(dst, FlagTransitive, AttrAsPath, asPath)

	nh := attrs.NextHop.As4()
	dst = encodeAttrHeader(dst, FlagTransitive, AttrNextHop, nh[:])

	return dst
}

// DecodeAttributes parses exactly `length` bytes of path attributes from the
// front of buf, requiring the three mandatory well-known attributes to be
// present, and returns them structured. Unknown attributes are skipped per
// their declared length and otherwise ignored.
func DecodeAttributes(buf []byte, length int) (PathAttributes, error) {
	if length > len(buf) {
		return PathAttributes{}, &MalformedUpdateError{Reason: "declared attribute length exceeds buffer"}
	}
	remaining := buf[:length]

	var attrs PathAttributes
	var haveOrigin, haveAsPath, haveNextHop bool

	for len(remaining) > 0 {
		if len(remaining) < 3 {
			return PathAttributes{}, &MalformedUpdateError{Reason: "truncated attribute header"}
		}
		flags := remaining[0]
		typ := remaining[1]

		var valueLen int
		var headerLen int
		if flags&FlagExtendedLength != 0 {
			if len(remaining) < 4 {
				return PathAttributes{}, &MalformedUpdateError{Reason: "truncated extended-length attribute header"}
			}
			valueLen = int(remaining[2])<<8 | int(remaining[3])
			headerLen = 4
		} else {
			valueLen = int(remaining[2])
			headerLen = 3
		}

		if len(remaining) < headerLen+valueLen {
			return PathAttributes{}, &MalformedUpdateError{Reason: "truncated attribute value"}
		}
		value := remaining[headerLen : headerLen+valueLen]
		remaining = remaining[headerLen+valueLen:]

		switch typ {
		case AttrOrigin:
			if len(value) != 1 {
				return PathAttributes{}, &MalformedUpdateError{Reason: "origin attribute wrong length"}
			}
			attrs.Origin = value[0]
			haveOrigin = true

		case AttrAsPath:
			path, err := decodeAsPath(value)
			if err != nil {
				return PathAttributes{}, err
			}
			attrs.AsPath = path
			haveAsPath = true

		case AttrNextHop:
			if len(value) != 4 {
				return PathAttributes{}, &MalformedUpdateError{Reason: "next hop attribute wrong length"}
			}
			attrs.NextHop = netip.AddrFrom4([4]byte(value))
			haveNextHop = true
		}
	}

	if !haveOrigin || !haveAsPath || !haveNextHop {
		return PathAttributes{}, &MalformedUpdateError{Reason: "missing mandatory well-known attribute"}
	}

	return attrs, nil
}

func decodeAsPath(value []byte) (AsPath, error) {
	var path AsPath
	for len(value) > 0 {
		if len(value) < 2 {
			return AsPath{}, &MalformedUpdateError{Reason: "truncated as-path segment header"}
		}
		segType := value[0]
		count := int(value[1])
		value = value[2:]
		if len(value) < count*2 {
			return AsPath{}, &MalformedUpdateError{Reason: "truncated as-path segment"}
		}
		asns := make([]uint16, count)
		for i := 0; i < count; i++ {
			asns[i] = ntohs(value[i*2 : i*2+2])
		}
		value = value[count*2:]
		path.Segments = append(path.Segments, AsPathSegment{Type: segType, Asns: asns})
	}
	return path, nil
}
