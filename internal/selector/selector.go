// Package selector computes the binary tags that route dispatch: Keccak-256
// over the canonical signature, truncated to 4 bytes for calls and errors,
// kept at the full 32 bytes for event topics.
package selector

import (
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/solbind/solbind/pkg/typesys"
)

// Widths of the two selector flavors in bytes.
const (
	CallWidth  = 4
	TopicWidth = 32
)

// Signature renders the canonical signature: name(type1,type2,...).
func Signature(name string, types []typesys.Type) string {
	return name + "(" + strings.Join(typesys.Canonicals(types), ",") + ")"
}

// Hash is the Keccak-256 digest of the canonical signature.
func Hash(signature string) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// Selector4 is the 4-byte selector of a call or error signature.
func Selector4(signature string) [CallWidth]byte {
	hash := Hash(signature)
	var out [CallWidth]byte
	copy(out[:], hash[:CallWidth])
	return out
}

// Topic32 is the 32-byte topic of an event signature.
func Topic32(signature string) [TopicWidth]byte {
	return Hash(signature)
}
