package group

import "bytes"

// Dispatcher is the dispatch contract of a call or error group: selector
// lookup, type check, decode by selector, and re-encode. Selector matching
// is exact byte equality over the fixed width; there is no prefix matching
// and no wildcard.
type Dispatcher struct {
	g *Group
}

func (d *Dispatcher) Name() string { return d.g.name }

func (d *Dispatcher) MinDataLength() int { return d.g.minDataLength }

func (d *Dispatcher) Count() int { return len(d.g.members) }

// Selector returns the selector of the value's active variant.
func (d *Dispatcher) Selector(v Value) []byte { return v.Selector() }

// SelectorAt indexes into the sorted selector table.
func (d *Dispatcher) SelectorAt(i int) ([]byte, bool) { return d.g.SelectorAt(i) }

// TypeCheck succeeds iff sel equals some member's selector.
func (d *Dispatcher) TypeCheck(sel []byte) error {
	for i := range d.g.members {
		if bytes.Equal(d.g.members[i].Selector, sel) {
			return nil
		}
	}
	return &UnknownSelectorError{Group: d.g.name, Selector: append([]byte(nil), sel...)}
}

// DecodeRaw matches sel against each member's selector and delegates payload
// decoding to the matching member's codec, wrapping the result in the
// corresponding variant. validate is passed through to the codec unchanged.
func (d *Dispatcher) DecodeRaw(sel, data []byte, validate bool) (Value, error) {
	for i := range d.g.members {
		m := &d.g.members[i]
		if !bytes.Equal(m.Selector, sel) {
			continue
		}
		payload, err := m.Codec.DecodeRaw(data, validate)
		if err != nil {
			return Value{}, err
		}
		return Value{member: m, payload: payload}, nil
	}
	return Value{}, &UnknownSelectorError{Group: d.g.name, Selector: append([]byte(nil), sel...)}
}

// EncodedSize is the encoded payload length of v, without selector prefix.
func (d *Dispatcher) EncodedSize(v Value) int { return v.EncodedSize() }

// EncodeRaw appends v's encoded payload (without selector prefix) to out.
func (d *Dispatcher) EncodeRaw(v Value, out *bytes.Buffer) { v.EncodeRaw(out) }

// Decode splits data into selector prefix and payload, applies the
// minimum-length early reject, and dispatches. The selector width is the
// group kind's width.
func (d *Dispatcher) Decode(data []byte, validate bool) (Value, error) {
	width := d.g.kind.SelectorWidth()
	need := width + d.g.minDataLength
	if len(data) < need {
		return Value{}, &ShortDataError{Group: d.g.name, Need: need, Have: len(data)}
	}
	return d.DecodeRaw(data[:width], data[width:], validate)
}

// Encode renders selector prefix plus encoded payload.
func (d *Dispatcher) Encode(v Value) []byte {
	var buf bytes.Buffer
	buf.Write(v.Selector())
	v.EncodeRaw(&buf)
	return buf.Bytes()
}
