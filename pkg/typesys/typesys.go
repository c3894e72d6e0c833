// Package typesys models the ABI parameter type language: elementary types
// (uintN, intN, address, bool, bytesN, bytes, string) and array types over
// them. It owns canonical signature rendering and static size computation.
package typesys

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	Uint Kind = iota
	Int
	Address
	Bool
	FixedBytes // bytesN
	Bytes
	String
	Array // T[k]
	Slice // T[]
)

// WordSize is the ABI encoding word width in bytes.
const WordSize = 32

type Type struct {
	Kind Kind
	Bits int   // Uint, Int: 8..256 in steps of 8
	Size int   // FixedBytes: 1..32; Array: element count
	Elem *Type // Array, Slice
}

// Parse resolves a textual parameter type ("uint256", "address[4]",
// "bytes32[]") into a Type. Aliases uint and int canonicalize to their
// 256-bit forms.
func Parse(text string) (Type, error) {
	base := text
	var suffixes []string
	if i := strings.IndexByte(text, '['); i >= 0 {
		base = text[:i]
		rest := text[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				return Type{}, fmt.Errorf("malformed type %q", text)
			}
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Type{}, fmt.Errorf("malformed type %q", text)
			}
			suffixes = append(suffixes, rest[1:end])
			rest = rest[end+1:]
		}
	}

	t, err := parseBase(base)
	if err != nil {
		return Type{}, err
	}

	// Suffixes nest left to right: uint256[3][] is a dynamic array of
	// uint256[3].
	for _, s := range suffixes {
		elem := t
		if s == "" {
			t = Type{Kind: Slice, Elem: &elem}
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return Type{}, fmt.Errorf("invalid array length %q in type %q", s, text)
		}
		t = Type{Kind: Array, Size: n, Elem: &elem}
	}
	return t, nil
}

func parseBase(base string) (Type, error) {
	switch base {
	case "address":
		return Type{Kind: Address}, nil
	case "bool":
		return Type{Kind: Bool}, nil
	case "bytes":
		return Type{Kind: Bytes}, nil
	case "string":
		return Type{Kind: String}, nil
	case "uint":
		return Type{Kind: Uint, Bits: 256}, nil
	case "int":
		return Type{Kind: Int, Bits: 256}, nil
	}

	if rest, ok := strings.CutPrefix(base, "uint"); ok {
		bits, err := parseBits(rest)
		if err != nil {
			return Type{}, fmt.Errorf("invalid type %q: %v", base, err)
		}
		return Type{Kind: Uint, Bits: bits}, nil
	}
	if rest, ok := strings.CutPrefix(base, "int"); ok {
		bits, err := parseBits(rest)
		if err != nil {
			return Type{}, fmt.Errorf("invalid type %q: %v", base, err)
		}
		return Type{Kind: Int, Bits: bits}, nil
	}
	if rest, ok := strings.CutPrefix(base, "bytes"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > 32 {
			return Type{}, fmt.Errorf("invalid type %q: fixed bytes size must be 1..32", base)
		}
		return Type{Kind: FixedBytes, Size: n}, nil
	}
	return Type{}, fmt.Errorf("unknown type %q", base)
}

func parseBits(s string) (int, error) {
	bits, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad width %q", s)
	}
	if bits < 8 || bits > 256 || bits%8 != 0 {
		return 0, fmt.Errorf("width must be 8..256 in steps of 8, got %d", bits)
	}
	return bits, nil
}

// Canonical renders the type as it appears in a canonical signature.
func (t Type) Canonical() string {
	switch t.Kind {
	case Uint:
		return "uint" + strconv.Itoa(t.Bits)
	case Int:
		return "int" + strconv.Itoa(t.Bits)
	case Address:
		return "address"
	case Bool:
		return "bool"
	case FixedBytes:
		return "bytes" + strconv.Itoa(t.Size)
	case Bytes:
		return "bytes"
	case String:
		return "string"
	case Array:
		return t.Elem.Canonical() + "[" + strconv.Itoa(t.Size) + "]"
	case Slice:
		return t.Elem.Canonical() + "[]"
	}
	return "<invalid>"
}

func (t Type) String() string { return t.Canonical() }

// Static reports whether the type has a fixed encoded size.
func (t Type) Static() bool {
	switch t.Kind {
	case Bytes, String, Slice:
		return false
	case Array:
		return t.Elem.Static()
	default:
		return true
	}
}

// Words is the encoded size of a static type in 32-byte words.
// It must not be called on dynamic types.
func (t Type) Words() int {
	if !t.Static() {
		panic("typesys: Words on dynamic type " + t.Canonical())
	}
	if t.Kind == Array {
		return t.Size * t.Elem.Words()
	}
	return 1
}

// MinSize is the minimum number of bytes an encoded value of this type can
// occupy inside a parameter tuple. Static types take their full padded size;
// dynamic types take an offset word plus a length word over an empty tail.
func (t Type) MinSize() int {
	if t.Static() {
		return t.Words() * WordSize
	}
	return 2 * WordSize
}

// MinTupleSize is the minimum encoded size of a parameter list: the sum of
// each member's minimum. This is the static lower bound used by interface
// groups for cheap early rejection.
func MinTupleSize(types []Type) int {
	total := 0
	for _, t := range types {
		total += t.MinSize()
	}
	return total
}

// Canonicals maps a type list to its canonical strings.
func Canonicals(types []Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Canonical()
	}
	return out
}
