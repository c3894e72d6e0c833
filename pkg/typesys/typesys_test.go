package typesys

import "testing"

func TestParseCanonical(t *testing.T) {
	testCases := []struct {
		input     string
		canonical string
	}{
		{"uint256", "uint256"},
		{"uint", "uint256"},
		{"int", "int256"},
		{"uint8", "uint8"},
		{"int128", "int128"},
		{"address", "address"},
		{"bool", "bool"},
		{"bytes32", "bytes32"},
		{"bytes1", "bytes1"},
		{"bytes", "bytes"},
		{"string", "string"},
		{"uint256[3]", "uint256[3]"},
		{"uint[3]", "uint256[3]"},
		{"address[]", "address[]"},
		{"uint256[3][]", "uint256[3][]"},
		{"bytes32[2][4]", "bytes32[2][4]"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			typ, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.input, err)
			}
			if got := typ.Canonical(); got != tc.canonical {
				t.Errorf("Canonical() = %q, want %q", got, tc.canonical)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	testCases := []string{
		"uint7",
		"uint0",
		"uint264",
		"int12",
		"bytes0",
		"bytes33",
		"uint256[0]",
		"uint256[-1]",
		"uint256[",
		"foo",
		"Uint256",
		"",
	}

	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", input)
			}
		})
	}
}

func TestStaticAndMinSize(t *testing.T) {
	testCases := []struct {
		input   string
		static  bool
		minSize int
	}{
		{"uint256", true, 32},
		{"address", true, 32},
		{"bool", true, 32},
		{"bytes32", true, 32},
		{"uint256[3]", true, 96},
		{"bytes32[2][4]", true, 256},
		{"bytes", false, 64},
		{"string", false, 64},
		{"address[]", false, 64},
		{"bytes[2]", false, 64}, // fixed array of dynamic elements is dynamic
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			typ, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.input, err)
			}
			if got := typ.Static(); got != tc.static {
				t.Errorf("Static() = %v, want %v", got, tc.static)
			}
			if got := typ.MinSize(); got != tc.minSize {
				t.Errorf("MinSize() = %d, want %d", got, tc.minSize)
			}
		})
	}
}

func TestMinTupleSize(t *testing.T) {
	parse := func(s string) Type {
		typ, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", s, err)
		}
		return typ
	}

	types := []Type{parse("address"), parse("uint256")}
	if got := MinTupleSize(types); got != 64 {
		t.Errorf("MinTupleSize(address,uint256) = %d, want 64", got)
	}

	if got := MinTupleSize(nil); got != 0 {
		t.Errorf("MinTupleSize(nil) = %d, want 0", got)
	}

	// Monotonicity: the bound never exceeds any single member's size.
	mixed := []Type{parse("uint256[4]"), parse("bytes"), parse("bool")}
	total := MinTupleSize(mixed)
	sum := 0
	for _, typ := range mixed {
		sum += typ.MinSize()
	}
	if total != sum {
		t.Errorf("MinTupleSize = %d, want sum of members %d", total, sum)
	}
}
