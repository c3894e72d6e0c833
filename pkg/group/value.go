package group

import "bytes"

// Value is one inhabitant of a group's tagged union: a member paired with
// its decoded payload. The zero Value belongs to no variant.
type Value struct {
	member  *Member
	payload Payload
}

// VariantID names the active variant, or "" for the zero Value.
func (v Value) VariantID() string {
	if v.member == nil {
		return ""
	}
	return v.member.VariantID
}

// PayloadTypeID names the payload type backing the active variant.
func (v Value) PayloadTypeID() string {
	if v.member == nil {
		return ""
	}
	return v.member.PayloadTypeID
}

// Payload returns the decoded payload.
func (v Value) Payload() Payload { return v.payload }

// Selector returns the selector of the payload type backing the active
// variant. It delegates to the payload codec's own selector, so it can never
// drift from the payload type's true selector.
func (v Value) Selector() []byte {
	return v.member.Codec.Selector()
}

// EncodedSize is the exact encoded payload length. Never fails; a payload
// the codec cannot size is the codec's own concern.
func (v Value) EncodedSize() int {
	return v.member.Codec.EncodedSize(v.payload)
}

// EncodeRaw appends the encoded payload (without selector prefix) to out.
func (v Value) EncodeRaw(out *bytes.Buffer) {
	v.member.Codec.EncodeRaw(v.payload, out)
}
