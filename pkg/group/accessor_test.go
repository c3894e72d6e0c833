package group

import (
	"errors"
	"testing"
)

func twoVariantGroup(t *testing.T) *Group {
	t.Helper()
	g, err := Compile("Vault", KindError, []Member{
		stubMember(KindError, "Overdrawn", []byte{1, 0, 0, 0}, 32),
		stubMember(KindError, "Frozen", []byte{2, 0, 0, 0}, 0),
	})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return g
}

func TestAccessorExhaustiveness(t *testing.T) {
	g := twoVariantGroup(t)
	accessors := g.Accessors()

	for _, src := range accessors {
		v := src.From("payload")
		matches := 0
		for _, a := range accessors {
			if a.Is(v) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("variant %q: %d accessors match, want exactly 1", src.VariantID(), matches)
		}
	}
}

func TestAccessorGetMut(t *testing.T) {
	g := twoVariantGroup(t)
	over, _ := g.Accessor("Overdrawn")
	frozen, _ := g.Accessor("Frozen")

	v := over.From("by 100")

	if p, ok := over.Get(v); !ok || p.(string) != "by 100" {
		t.Errorf("Get = %v, %v; want \"by 100\", true", p, ok)
	}
	if _, ok := frozen.Get(v); ok {
		t.Errorf("Get matched the wrong variant")
	}

	slot, ok := over.Mut(&v)
	if !ok {
		t.Fatalf("Mut did not match")
	}
	*slot = "by 200"
	if v.Payload().(string) != "by 200" {
		t.Errorf("Mut write did not reach the value")
	}

	if _, ok := frozen.Mut(&v); ok {
		t.Errorf("Mut matched the wrong variant")
	}
	if _, ok := over.Mut(nil); ok {
		t.Errorf("Mut(nil) = true")
	}
}

func TestAccessorTryInto(t *testing.T) {
	g := twoVariantGroup(t)
	over, _ := g.Accessor("Overdrawn")
	frozen, _ := g.Accessor("Frozen")

	v := over.From("payload")

	p, err := over.TryInto(v)
	if err != nil || p.(string) != "payload" {
		t.Fatalf("TryInto = %v, %v; want payload, nil", p, err)
	}

	_, err = frozen.TryInto(v)
	var merr *VariantMismatchError
	if !errors.As(err, &merr) {
		t.Fatalf("err = %v, want VariantMismatchError", err)
	}
	if merr.Want != "Frozen" {
		t.Errorf("Want = %q, want Frozen", merr.Want)
	}
	// The failed conversion returns the value intact: chain to the right one.
	if merr.Value.VariantID() != "Overdrawn" {
		t.Fatalf("error lost the value: variant %q", merr.Value.VariantID())
	}
	if p, err := over.TryInto(merr.Value); err != nil || p.(string) != "payload" {
		t.Errorf("chained TryInto = %v, %v", p, err)
	}
}

func TestAccessorZeroValue(t *testing.T) {
	g := twoVariantGroup(t)

	var zero Value
	if zero.VariantID() != "" || zero.PayloadTypeID() != "" {
		t.Errorf("zero value claims a variant")
	}
	for _, a := range g.Accessors() {
		if a.Is(zero) {
			t.Errorf("accessor %q matches the zero value", a.VariantID())
		}
		if _, ok := a.Get(zero); ok {
			t.Errorf("Get matched the zero value")
		}
	}

	if _, ok := g.Accessor("nope"); ok {
		t.Errorf("Accessor(nope) = true")
	}
}
