package selector

import (
	"encoding/hex"
	"testing"

	"github.com/solbind/solbind/pkg/typesys"
)

func parseAll(t *testing.T, names ...string) []typesys.Type {
	t.Helper()
	types := make([]typesys.Type, len(names))
	for i, n := range names {
		typ, err := typesys.Parse(n)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", n, err)
		}
		types[i] = typ
	}
	return types
}

func TestSignature(t *testing.T) {
	testCases := []struct {
		name  string
		types []string
		want  string
	}{
		{"transfer", []string{"address", "uint256"}, "transfer(address,uint256)"},
		{"totalSupply", nil, "totalSupply()"},
		{"f", []string{"uint", "int"}, "f(uint256,int256)"},
		{"g", []string{"bytes32[2]", "string"}, "g(bytes32[2],string)"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := Signature(tc.name, parseAll(t, tc.types...)); got != tc.want {
				t.Errorf("Signature = %q, want %q", got, tc.want)
			}
		})
	}
}

// Known selectors from the canonical ERC-20 interface.
func TestSelector4(t *testing.T) {
	testCases := []struct {
		signature string
		selector  string
	}{
		{"transfer(address,uint256)", "a9059cbb"},
		{"approve(address,uint256)", "095ea7b3"},
		{"transferFrom(address,address,uint256)", "23b872dd"},
		{"balanceOf(address)", "70a08231"},
		{"totalSupply()", "18160ddd"},
	}

	for _, tc := range testCases {
		t.Run(tc.signature, func(t *testing.T) {
			sel := Selector4(tc.signature)
			if got := hex.EncodeToString(sel[:]); got != tc.selector {
				t.Errorf("Selector4(%q) = %s, want %s", tc.signature, got, tc.selector)
			}
		})
	}
}

func TestTopic32(t *testing.T) {
	testCases := []struct {
		signature string
		topic     string
	}{
		{
			"Transfer(address,address,uint256)",
			"ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		},
		{
			"Approval(address,address,uint256)",
			"8c5be1e5ebec7d5bd14f71427d1e84f3dd0314c0f7b2291e5b200ac8c7c3b925",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.signature, func(t *testing.T) {
			topic := Topic32(tc.signature)
			if got := hex.EncodeToString(topic[:]); got != tc.topic {
				t.Errorf("Topic32(%q) = %s, want %s", tc.signature, got, tc.topic)
			}
		})
	}
}

func TestSelectorIsHashPrefix(t *testing.T) {
	sig := "transfer(address,uint256)"
	hash := Hash(sig)
	sel := Selector4(sig)
	for i := range sel {
		if sel[i] != hash[i] {
			t.Fatalf("selector byte %d = %02x, want hash prefix %02x", i, sel[i], hash[i])
		}
	}
}
