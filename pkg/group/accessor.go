package group

// Accessor is the synthesized query/extraction surface for one variant of a
// group's union: a predicate, immutable and mutable payload access, the
// consuming extraction, and the lossless payload-to-union conversion. All
// operations are pure and none can panic.
type Accessor struct {
	member *Member
}

// VariantID names the variant this accessor targets.
func (a Accessor) VariantID() string {
	if a.member == nil {
		return ""
	}
	return a.member.VariantID
}

// Is reports whether v's active variant is this one. For any value of the
// group exactly one accessor's Is holds.
func (a Accessor) Is(v Value) bool {
	return a.member != nil && v.member == a.member
}

// Get returns the payload if v matches this variant.
func (a Accessor) Get(v Value) (Payload, bool) {
	if !a.Is(v) {
		return nil, false
	}
	return v.payload, true
}

// Mut returns a pointer to v's payload slot if v matches this variant,
// allowing in-place replacement of the payload.
func (a Accessor) Mut(v *Value) (*Payload, bool) {
	if v == nil || !a.Is(*v) {
		return nil, false
	}
	return &v.payload, true
}

// From wraps a payload of this variant's type into the union. The conversion
// is lossless and always succeeds.
func (a Accessor) From(p Payload) Value {
	return Value{member: a.member, payload: p}
}

// TryInto unwraps the payload if v matches this variant. On mismatch the
// returned VariantMismatchError carries v unchanged, so the caller can chain
// attempts across variants without losing the value.
func (a Accessor) TryInto(v Value) (Payload, error) {
	if !a.Is(v) {
		return nil, &VariantMismatchError{Want: a.VariantID(), Value: v}
	}
	return v.payload, nil
}
