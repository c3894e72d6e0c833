package group

import "fmt"

// UnknownSelectorError reports a selector that matches no member of the
// group. Recoverable: callers routinely retry against another group.
type UnknownSelectorError struct {
	Group    string
	Selector []byte
}

func (e *UnknownSelectorError) Error() string {
	return fmt.Sprintf("%s: unknown selector 0x%x", e.Group, e.Selector)
}

// VariantMismatchError reports a failed union-to-payload conversion. It
// carries the original union value unchanged so the caller can retry the
// conversion against another variant without loss.
type VariantMismatchError struct {
	Want  string
	Value Value
}

func (e *VariantMismatchError) Error() string {
	return fmt.Sprintf("value is variant %q, not %q", e.Value.VariantID(), e.Want)
}

// ShortDataError reports input shorter than the group's structural minimum:
// the selector prefix plus the minimum payload length over all members.
type ShortDataError struct {
	Group string
	Need  int
	Have  int
}

func (e *ShortDataError) Error() string {
	return fmt.Sprintf("%s: data too short: need at least %d bytes, have %d", e.Group, e.Need, e.Have)
}

// DuplicateSelectorError is a construction-time rejection of two members
// hashing to the same selector. This is a definition-authoring error.
type DuplicateSelectorError struct {
	Group    string
	Selector []byte
	VariantA string
	VariantB string
}

func (e *DuplicateSelectorError) Error() string {
	return fmt.Sprintf("%s: selector 0x%x collides between %q and %q",
		e.Group, e.Selector, e.VariantA, e.VariantB)
}

// DuplicateVariantError is a construction-time rejection of two members with
// the same variant identifier.
type DuplicateVariantError struct {
	Group   string
	Variant string
}

func (e *DuplicateVariantError) Error() string {
	return fmt.Sprintf("%s: duplicate variant %q", e.Group, e.Variant)
}

// SelectorWidthError is a construction-time rejection of a selector whose
// width does not match the group kind.
type SelectorWidthError struct {
	Group   string
	Variant string
	Want    int
	Got     int
}

func (e *SelectorWidthError) Error() string {
	return fmt.Sprintf("%s: variant %q has a %d-byte selector, want %d",
		e.Group, e.Variant, e.Got, e.Want)
}
