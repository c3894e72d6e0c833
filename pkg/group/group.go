// Package group compiles the same-kind definitions of one contract into an
// interface group: a tagged union of member payloads plus the dispatch
// contract that routes raw selector bytes to typed payload codecs.
//
// A group is built once per compilation pass and is immutable afterwards. It
// owns its member list and selector table; construction is all-or-nothing.
package group

import (
	"bytes"
	"sort"
)

type Kind int

const (
	KindCall Kind = iota
	KindError
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindError:
		return "error"
	case KindEvent:
		return "event"
	}
	return "unknown"
}

// plural is the group name suffix: TokenCalls, TokenErrors, TokenEvents.
func (k Kind) plural() string {
	switch k {
	case KindCall:
		return "Calls"
	case KindError:
		return "Errors"
	case KindEvent:
		return "Events"
	}
	return "Unknown"
}

// SelectorWidth is the selector byte width for members of this kind:
// 4 bytes for calls and errors, 32 bytes (a full topic hash) for events.
func (k Kind) SelectorWidth() int {
	if k == KindEvent {
		return 32
	}
	return 4
}

// Payload is a decoded member payload as produced by its codec.
type Payload = any

// Codec is the capability set every member payload type provides. The group
// core only delegates to it; wire layout is the codec's concern.
type Codec interface {
	Selector() []byte
	DecodeRaw(data []byte, validate bool) (Payload, error)
	EncodedSize(payload Payload) int
	EncodeRaw(payload Payload, out *bytes.Buffer)
}

// Member is the normalized descriptor of one definition, supplied by the
// binder: parser output joined with the selector hash and name resolution.
type Member struct {
	Kind          Kind
	VariantID     string // unique within the group
	PayloadTypeID string // overload-specific for calls, == VariantID otherwise
	Selector      []byte // 4 or 32 bytes by kind
	MinPayloadLen int
	Codec         Codec
}

// Group is a compiled interface group.
type Group struct {
	name          string
	kind          Kind
	members       []Member // declaration order
	byVariant     map[string]*Member
	table         [][]byte // selectors sorted ascending, independent of members order
	minDataLength int
}

// Compile builds the interface group for one contract and kind. Fewer than
// two members build no group: a single definition needs no dispatch union and
// is returned as (nil, nil) so the caller emits it standalone.
//
// Construction fails atomically on a duplicate variant id, a selector of the
// wrong width, or a selector collision. Colliding selectors are rejected here
// rather than becoming an unreachable dispatch arm later.
func Compile(contractName string, kind Kind, members []Member) (*Group, error) {
	if len(members) < 2 {
		return nil, nil
	}

	g := &Group{
		name:      contractName + kind.plural(),
		kind:      kind,
		members:   append([]Member(nil), members...),
		byVariant: make(map[string]*Member, len(members)),
	}

	width := kind.SelectorWidth()
	for i := range g.members {
		m := &g.members[i]
		if len(m.Selector) != width {
			return nil, &SelectorWidthError{
				Group:   g.name,
				Variant: m.VariantID,
				Want:    width,
				Got:     len(m.Selector),
			}
		}
		if _, exists := g.byVariant[m.VariantID]; exists {
			return nil, &DuplicateVariantError{Group: g.name, Variant: m.VariantID}
		}
		m.Selector = append([]byte(nil), m.Selector...)
		g.byVariant[m.VariantID] = m
	}

	table, err := buildSelectorTable(g.name, g.members)
	if err != nil {
		return nil, err
	}
	g.table = table
	g.minDataLength = minDataLength(g.members)
	return g, nil
}

// buildSelectorTable sorts the members' selectors ascending by unsigned
// byte-wise comparison and rejects duplicates.
func buildSelectorTable(groupName string, members []Member) ([][]byte, error) {
	order := make([]int, len(members))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return bytes.Compare(members[order[a]].Selector, members[order[b]].Selector) < 0
	})

	table := make([][]byte, len(members))
	for i, idx := range order {
		if i > 0 && bytes.Equal(members[order[i-1]].Selector, members[idx].Selector) {
			return nil, &DuplicateSelectorError{
				Group:    groupName,
				Selector: append([]byte(nil), members[idx].Selector...),
				VariantA: members[order[i-1]].VariantID,
				VariantB: members[idx].VariantID,
			}
		}
		table[i] = append([]byte(nil), members[idx].Selector...)
	}
	return table, nil
}

// minDataLength is the group-wide minimum encoded payload length: the
// minimum over all members. Only called with two or more members.
func minDataLength(members []Member) int {
	min := members[0].MinPayloadLen
	for _, m := range members[1:] {
		if m.MinPayloadLen < min {
			min = m.MinPayloadLen
		}
	}
	return min
}

// Name is the group's display name, {Contract}{Kind}s.
func (g *Group) Name() string { return g.name }

func (g *Group) Kind() Kind { return g.kind }

func (g *Group) Count() int { return len(g.members) }

// MinDataLength is the cheap early-reject bound: no member's payload can
// encode to fewer bytes.
func (g *Group) MinDataLength() int { return g.minDataLength }

// Members returns the member descriptors in declaration order.
func (g *Group) Members() []Member {
	return append([]Member(nil), g.members...)
}

// Selectors returns the selector table: all member selectors sorted
// ascending. The order is independent of declaration order.
func (g *Group) Selectors() [][]byte {
	out := make([][]byte, len(g.table))
	for i, sel := range g.table {
		out[i] = append([]byte(nil), sel...)
	}
	return out
}

// SelectorAt indexes into the sorted selector table. Out of range yields
// false, not an error.
func (g *Group) SelectorAt(i int) ([]byte, bool) {
	if i < 0 || i >= len(g.table) {
		return nil, false
	}
	return append([]byte(nil), g.table[i]...), true
}

// Accessor returns the accessor for one variant.
func (g *Group) Accessor(variantID string) (Accessor, bool) {
	m, ok := g.byVariant[variantID]
	if !ok {
		return Accessor{}, false
	}
	return Accessor{member: m}, true
}

// Accessors returns one accessor per variant, in declaration order.
func (g *Group) Accessors() []Accessor {
	out := make([]Accessor, len(g.members))
	for i := range g.members {
		out[i] = Accessor{member: &g.members[i]}
	}
	return out
}

// Dispatcher returns the group's dispatch contract. Event groups carry only
// the union and accessors; they have no selector-routed dispatch contract
// and return false.
func (g *Group) Dispatcher() (*Dispatcher, bool) {
	if g.kind == KindEvent {
		return nil, false
	}
	return &Dispatcher{g: g}, true
}
