// Package codec implements the per-payload-type binary codec that interface
// groups delegate to: standard head/tail parameter encoding over 32-byte
// words. Each compiled member owns one Codec carrying its selector and
// parameter types.
//
// Decoded value mapping: uintN/intN -> *big.Int, address -> Address,
// bool -> bool, bytesN/bytes -> []byte, string -> string, arrays -> []any.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/solbind/solbind/pkg/typesys"
)

// Address is a decoded 20-byte address parameter.
type Address [20]byte

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

// Tuple is the decoded payload of one member: its parameter values in
// declaration order.
type Tuple struct {
	Values []any
}

// Codec encodes and decodes the payload of a single member. It carries the
// member's selector so that a union value can always recover its selector
// from its payload type, never from a stored copy.
type Codec struct {
	signature string
	selector  []byte
	types     []typesys.Type
}

func New(signature string, selector []byte, types []typesys.Type) *Codec {
	return &Codec{
		signature: signature,
		selector:  append([]byte(nil), selector...),
		types:     types,
	}
}

func (c *Codec) Signature() string { return c.signature }

func (c *Codec) Types() []typesys.Type { return c.types }

// Selector returns the member's selector bytes.
func (c *Codec) Selector() []byte {
	return append([]byte(nil), c.selector...)
}

// MinSize is the minimum encoded payload length.
func (c *Codec) MinSize() int { return typesys.MinTupleSize(c.types) }

// DecodeRaw decodes an encoded parameter tuple (without selector prefix).
// With validate set, value-level constraints are enforced on top of the
// structural decode: integer ranges, strict booleans, zero padding.
func (c *Codec) DecodeRaw(data []byte, validate bool) (any, error) {
	values, err := decodeTuple(c.types, data, validate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.signature, err)
	}
	return &Tuple{Values: values}, nil
}

// EncodedSize is the exact encoded length of the payload.
func (c *Codec) EncodedSize(payload any) int {
	return len(encodeTuple(c.types, c.tupleOf(payload).Values))
}

// EncodeRaw appends the encoded parameter tuple to out. Encoding never
// fails; a payload that does not match the declared parameter types is a
// programmer error and panics with the member signature.
func (c *Codec) EncodeRaw(payload any, out *bytes.Buffer) {
	out.Write(encodeTuple(c.types, c.tupleOf(payload).Values))
}

func (c *Codec) tupleOf(payload any) *Tuple {
	tup, ok := payload.(*Tuple)
	if !ok || len(tup.Values) != len(c.types) {
		panic("codec: payload does not match " + c.signature)
	}
	return tup
}

// --- encoding ---

func encodeTuple(types []typesys.Type, values []any) []byte {
	headSize := 0
	for _, t := range types {
		headSize += headWidth(t)
	}

	var head, tail bytes.Buffer
	for i, t := range types {
		if t.Static() {
			head.Write(encodeStatic(t, values[i]))
			continue
		}
		writeWord(&head, uint64(headSize+tail.Len()))
		tail.Write(encodeDynamic(t, values[i]))
	}
	head.Write(tail.Bytes())
	return head.Bytes()
}

func headWidth(t typesys.Type) int {
	if t.Static() {
		return t.Words() * typesys.WordSize
	}
	return typesys.WordSize
}

func encodeStatic(t typesys.Type, v any) []byte {
	switch t.Kind {
	case typesys.Uint, typesys.Int:
		return encodeInteger(t, v.(*big.Int))
	case typesys.Address:
		var word [typesys.WordSize]byte
		a := v.(Address)
		copy(word[12:], a[:])
		return word[:]
	case typesys.Bool:
		var word [typesys.WordSize]byte
		if v.(bool) {
			word[31] = 1
		}
		return word[:]
	case typesys.FixedBytes:
		var word [typesys.WordSize]byte
		b := v.([]byte)
		if len(b) != t.Size {
			panic(fmt.Sprintf("codec: %s value has %d bytes", t.Canonical(), len(b)))
		}
		copy(word[:], b)
		return word[:]
	case typesys.Array:
		elems := v.([]any)
		if len(elems) != t.Size {
			panic(fmt.Sprintf("codec: %s value has %d elements", t.Canonical(), len(elems)))
		}
		var buf bytes.Buffer
		for _, e := range elems {
			buf.Write(encodeStatic(*t.Elem, e))
		}
		return buf.Bytes()
	}
	panic("codec: encodeStatic on dynamic type " + t.Canonical())
}

var wordModulus = new(big.Int).Lsh(big.NewInt(1), 256)

func encodeInteger(t typesys.Type, v *big.Int) []byte {
	if !fitsInteger(t, v) {
		panic(fmt.Sprintf("codec: value %s out of range for %s", v, t.Canonical()))
	}
	// Two's complement over the full word for negative values.
	u := new(big.Int).Mod(v, wordModulus)
	var word [typesys.WordSize]byte
	u.FillBytes(word[:])
	return word[:]
}

func encodeDynamic(t typesys.Type, v any) []byte {
	var buf bytes.Buffer
	switch t.Kind {
	case typesys.Bytes:
		writeBytesTail(&buf, v.([]byte))
	case typesys.String:
		writeBytesTail(&buf, []byte(v.(string)))
	case typesys.Slice:
		elems := v.([]any)
		writeWord(&buf, uint64(len(elems)))
		elemTypes := repeatType(*t.Elem, len(elems))
		buf.Write(encodeTuple(elemTypes, elems))
	case typesys.Array:
		// Fixed array of dynamic elements.
		elems := v.([]any)
		if len(elems) != t.Size {
			panic(fmt.Sprintf("codec: %s value has %d elements", t.Canonical(), len(elems)))
		}
		buf.Write(encodeTuple(repeatType(*t.Elem, len(elems)), elems))
	default:
		panic("codec: encodeDynamic on static type " + t.Canonical())
	}
	return buf.Bytes()
}

func writeBytesTail(buf *bytes.Buffer, data []byte) {
	writeWord(buf, uint64(len(data)))
	buf.Write(data)
	if pad := padLen(len(data)); pad > 0 {
		buf.Write(make([]byte, pad))
	}
}

func writeWord(buf *bytes.Buffer, v uint64) {
	var word [typesys.WordSize]byte
	binary.BigEndian.PutUint64(word[24:], v)
	buf.Write(word[:])
}

func padLen(n int) int {
	if n%typesys.WordSize == 0 {
		return 0
	}
	return typesys.WordSize - n%typesys.WordSize
}

func repeatType(t typesys.Type, n int) []typesys.Type {
	types := make([]typesys.Type, n)
	for i := range types {
		types[i] = t
	}
	return types
}

// --- decoding ---

// decodeTuple decodes a parameter list from scope. Dynamic offsets index
// into scope, as offsets are always relative to the enclosing tuple.
func decodeTuple(types []typesys.Type, scope []byte, validate bool) ([]any, error) {
	values := make([]any, len(types))
	pos := 0
	for i, t := range types {
		width := headWidth(t)
		if pos+width > len(scope) {
			return nil, fmt.Errorf("short data: need %d bytes, have %d", pos+width, len(scope))
		}

		if t.Static() {
			v, err := decodeStatic(t, scope[pos:pos+width], validate)
			if err != nil {
				return nil, err
			}
			values[i] = v
			pos += width
			continue
		}

		offset, err := readOffset(scope[pos : pos+typesys.WordSize])
		if err != nil {
			return nil, err
		}
		if offset > len(scope) {
			return nil, fmt.Errorf("offset %d out of bounds (%d bytes)", offset, len(scope))
		}
		v, err := decodeDynamic(t, scope[offset:], validate)
		if err != nil {
			return nil, err
		}
		values[i] = v
		pos += width
	}
	return values, nil
}

func decodeStatic(t typesys.Type, word []byte, validate bool) (any, error) {
	switch t.Kind {
	case typesys.Uint, typesys.Int:
		return decodeInteger(t, word, validate)
	case typesys.Address:
		if validate && !allZero(word[:12]) {
			return nil, fmt.Errorf("address word has non-zero padding")
		}
		var a Address
		copy(a[:], word[12:])
		return a, nil
	case typesys.Bool:
		if validate && (!allZero(word[:31]) || word[31] > 1) {
			return nil, fmt.Errorf("invalid boolean word")
		}
		return word[31] != 0, nil
	case typesys.FixedBytes:
		if validate && !allZero(word[t.Size:]) {
			return nil, fmt.Errorf("%s word has non-zero padding", t.Canonical())
		}
		return append([]byte(nil), word[:t.Size]...), nil
	case typesys.Array:
		elemWidth := t.Elem.Words() * typesys.WordSize
		elems := make([]any, t.Size)
		for i := range elems {
			v, err := decodeStatic(*t.Elem, word[i*elemWidth:(i+1)*elemWidth], validate)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return elems, nil
	}
	return nil, fmt.Errorf("decodeStatic on dynamic type %s", t.Canonical())
}

func decodeInteger(t typesys.Type, word []byte, validate bool) (*big.Int, error) {
	v := new(big.Int).SetBytes(word)
	if t.Kind == typesys.Int && v.Bit(255) == 1 {
		v.Sub(v, wordModulus)
	}
	if validate && !fitsInteger(t, v) {
		return nil, fmt.Errorf("value %s out of range for %s", v, t.Canonical())
	}
	return v, nil
}

func fitsInteger(t typesys.Type, v *big.Int) bool {
	if t.Kind == typesys.Uint {
		return v.Sign() >= 0 && v.BitLen() <= t.Bits
	}
	// Signed range: -2^(bits-1) .. 2^(bits-1)-1.
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits-1))
	if v.Sign() < 0 {
		return v.CmpAbs(limit) <= 0
	}
	return v.Cmp(limit) < 0
}

func decodeDynamic(t typesys.Type, scope []byte, validate bool) (any, error) {
	switch t.Kind {
	case typesys.Bytes:
		return readBytesTail(scope)
	case typesys.String:
		b, err := readBytesTail(scope)
		if err != nil {
			return nil, err
		}
		return string(b.([]byte)), nil
	case typesys.Slice:
		if len(scope) < typesys.WordSize {
			return nil, fmt.Errorf("short data: missing array length")
		}
		count, err := readOffset(scope[:typesys.WordSize])
		if err != nil {
			return nil, err
		}
		body := scope[typesys.WordSize:]
		if count*t.Elem.MinSize() > len(body) {
			return nil, fmt.Errorf("array length %d exceeds data", count)
		}
		return decodeTuple(repeatType(*t.Elem, count), body, validate)
	case typesys.Array:
		return decodeTuple(repeatType(*t.Elem, t.Size), scope, validate)
	}
	return nil, fmt.Errorf("decodeDynamic on static type %s", t.Canonical())
}

func readBytesTail(scope []byte) (any, error) {
	if len(scope) < typesys.WordSize {
		return nil, fmt.Errorf("short data: missing length word")
	}
	n, err := readOffset(scope[:typesys.WordSize])
	if err != nil {
		return nil, err
	}
	body := scope[typesys.WordSize:]
	if n > len(body) {
		return nil, fmt.Errorf("length %d exceeds data (%d bytes)", n, len(body))
	}
	return append([]byte(nil), body[:n]...), nil
}

// readOffset reads a word that must fit in an int (offsets, lengths, counts).
func readOffset(word []byte) (int, error) {
	if !allZero(word[:24]) {
		return 0, fmt.Errorf("word value exceeds address space")
	}
	v := binary.BigEndian.Uint64(word[24:])
	if v > uint64(1)<<31 {
		return 0, fmt.Errorf("word value %d exceeds address space", v)
	}
	return int(v), nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
