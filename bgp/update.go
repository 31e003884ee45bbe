package bgp

// Update is the UPDATE message (RFC 4271 §4.3). The three mandatory
// well-known attributes must be present whenever NLRI is non-empty.
type Update struct {
	WithdrawnRoutes []Ipv4Network
	Attributes      PathAttributes
	NLRI            []Ipv4Network
}

func (Update) Type() uint8 { return MsgUpdate }

func (u Update) body() []byte {
	var withdrawn []byte
	for _, n := range u.WithdrawnRoutes {
		withdrawn = EncodeNlri(withdrawn, n)
	}

	var out []byte
	wl := htons(uint16(len(withdrawn)))
	out = append(out, wl[0], wl[1])
	out = append(out, withdrawn...)

	if len(u.NLRI) == 0 {
		return append(out, 0, 0)
	}

	var attrs []byte
	attrs = EncodeAttributes(attrs, u.Attributes)
	al := htons(uint16(len(attrs)))
	out = append(out, al[0], al[1])
	out = append(out, attrs...)

	for _, n := range u.NLRI {
		out = EncodeNlri(out, n)
	}

	return out
}

// DecodeUpdate parses an UPDATE message body. It fails with
// MalformedUpdateError if the mandatory attributes are missing while NLRI
// is non-empty, or if the declared lengths don't fit the buffer.
func DecodeUpdate(body []byte) (Message, error) {
	if len(body) < 2 {
		return nil, &MalformedUpdateError{Reason: "short body"}
	}
	withdrawnLen := int(ntohs(body[0:2]))
	body = body[2:]
	withdrawn, err := DecodeNlriList(body, withdrawnLen)
	if err != nil {
		return nil, err
	}
	body = body[withdrawnLen:]

	if len(body) < 2 {
		return nil, &MalformedUpdateError{Reason: "short body after withdrawn routes"}
	}
	attrLen := int(ntohs(body[0:2]))
	body = body[2:]
	if attrLen > len(body) {
		return nil, &MalformedUpdateError{Reason: "attribute length exceeds buffer"}
	}
	attrBytes := body[:attrLen]
	nlriBytes := body[attrLen:]

	var attrs PathAttributes
	nlri, err := DecodeNlriList(nlriBytes, len(nlriBytes))
	if err != nil {
		return nil, err
	}

	if len(nlri) > 0 {
		attrs, err = DecodeAttributes(attrBytes, len(attrBytes))
		if err != nil {
			return nil, err
		}
	}

	return Update{WithdrawnRoutes: withdrawn, Attributes: attrs, NLRI: nlri}, nil
}
