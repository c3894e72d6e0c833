// Package gen emits Go bindings for compiled contracts: selector constants,
// group constructors, and per-variant helpers over group values. Output is
// formatted and import-pruned before it is returned.
package gen

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/solbind/solbind/internal/config"
	"github.com/solbind/solbind/pkg/codec"
	"github.com/solbind/solbind/pkg/group"
)

type Generator struct {
	// Package is the package name of the generated file.
	Package string
}

// Generate renders the bindings file for one compiled contract. source is
// recorded in the header for provenance.
func (gn *Generator) Generate(c *group.Contract, source string) ([]byte, error) {
	pkg := gn.Package
	if pkg == "" {
		pkg = strings.ToLower(c.Name)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by %s. DO NOT EDIT.\n", config.ToolName)
	if source != "" {
		fmt.Fprintf(&buf, "// Source: %s\n", source)
	}
	fmt.Fprintf(&buf, "\npackage %s\n\n", pkg)
	buf.WriteString(`import (
	"github.com/solbind/solbind/pkg/codec"
	"github.com/solbind/solbind/pkg/group"
	"github.com/solbind/solbind/pkg/typesys"
)
`)

	kinds := []struct {
		kind    group.Kind
		members []group.Member
		grp     *group.Group
	}{
		{group.KindCall, c.CallMembers, c.Calls},
		{group.KindError, c.ErrorMembers, c.Errs},
		{group.KindEvent, c.EventMembers, c.Events},
	}

	for _, k := range kinds {
		if len(k.members) == 0 {
			continue
		}
		if err := emitSelectors(&buf, c.Name, k.kind, k.members); err != nil {
			return nil, err
		}
		if k.grp != nil {
			if err := emitGroup(&buf, c.Name, k.kind, k.members); err != nil {
				return nil, err
			}
		}
	}
	emitHelpers(&buf)

	out, err := imports.Process("", buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format bindings for %s: %w", c.Name, err)
	}
	return out, nil
}

// emitSelectors writes the selector (or topic) and signature constants for
// every member of one kind, standalone definitions included.
func emitSelectors(buf *bytes.Buffer, contract string, kind group.Kind, members []group.Member) error {
	fmt.Fprintf(buf, "\n// %s %s selectors and canonical signatures.\n", contract, kind)
	buf.WriteString("var (\n")
	for _, m := range members {
		fmt.Fprintf(buf, "\t%s = %s\n", selConstName(kind, m.VariantID), byteArrayLit(m.Selector))
	}
	buf.WriteString(")\n\nconst (\n")
	for _, m := range members {
		mc, err := memberCodec(m)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "\t%s = %q\n", sigConstName(kind, m.VariantID), mc.Signature())
	}
	buf.WriteString(")\n")
	return nil
}

// emitGroup writes the group constructor and the per-variant helpers.
func emitGroup(buf *bytes.Buffer, contract string, kind group.Kind, members []group.Member) error {
	groupName := contract + kindPlural(kind)
	fmt.Fprintf(buf, "\n// New%s compiles the %s group. The definitions were verified\n", groupName, groupName)
	buf.WriteString("// at generation time, so construction cannot fail.\n")
	fmt.Fprintf(buf, "func New%s() *group.Group {\n", groupName)
	buf.WriteString("\tmembers := []group.Member{\n")
	for _, m := range members {
		mc, err := memberCodec(m)
		if err != nil {
			return err
		}
		typeArgs := ""
		for _, t := range mc.Types() {
			typeArgs += fmt.Sprintf(", %q", t.Canonical())
		}
		fmt.Fprintf(buf, "\t\tnewMember(group.Kind%s, %q, %q, %s, %s[:]%s),\n",
			kindName(kind), m.VariantID, m.PayloadTypeID,
			sigConstName(kind, m.VariantID), selConstName(kind, m.VariantID), typeArgs)
	}
	buf.WriteString("\t}\n")
	fmt.Fprintf(buf, "\tg, err := group.Compile(%q, group.Kind%s, members)\n", contract, kindName(kind))
	buf.WriteString("\tif err != nil {\n\t\tpanic(err)\n\t}\n\treturn g\n}\n")

	for _, m := range members {
		helper := exportName(m.VariantID) + kindName(kind)
		fmt.Fprintf(buf, "\n// Is%s reports whether v is the %s variant of %s.\n", helper, m.VariantID, groupName)
		fmt.Fprintf(buf, "func Is%s(v group.Value) bool {\n\treturn v.VariantID() == %q\n}\n", helper, m.VariantID)
		fmt.Fprintf(buf, "\n// As%s returns the %s payload if v matches.\n", helper, m.VariantID)
		fmt.Fprintf(buf, "func As%s(v group.Value) (*codec.Tuple, bool) {\n", helper)
		fmt.Fprintf(buf, "\tif !Is%s(v) {\n\t\treturn nil, false\n\t}\n", helper)
		buf.WriteString("\treturn v.Payload().(*codec.Tuple), true\n}\n")
	}
	return nil
}

// emitHelpers writes the shared member constructor used by the group
// constructors.
func emitHelpers(buf *bytes.Buffer) {
	buf.WriteString(`
func newMember(kind group.Kind, variantID, payloadTypeID, sig string, sel []byte, typeNames ...string) group.Member {
	types := make([]typesys.Type, len(typeNames))
	for i, tn := range typeNames {
		t, err := typesys.Parse(tn)
		if err != nil {
			panic(err)
		}
		types[i] = t
	}
	c := codec.New(sig, sel, types)
	return group.Member{
		Kind:          kind,
		VariantID:     variantID,
		PayloadTypeID: payloadTypeID,
		Selector:      sel,
		MinPayloadLen: c.MinSize(),
		Codec:         c,
	}
}
`)
}

// memberCodec recovers the concrete codec from a member; the binder always
// constructs members with codec.New.
func memberCodec(m group.Member) (*codec.Codec, error) {
	mc, ok := m.Codec.(*codec.Codec)
	if !ok {
		return nil, fmt.Errorf("member %s has no concrete codec", m.VariantID)
	}
	return mc, nil
}

func selConstName(kind group.Kind, variantID string) string {
	if kind == group.KindEvent {
		return "Topic" + exportName(variantID) + "Event"
	}
	return "Sel" + exportName(variantID) + kindName(kind)
}

func sigConstName(kind group.Kind, variantID string) string {
	return "Sig" + exportName(variantID) + kindName(kind)
}

func kindName(kind group.Kind) string {
	switch kind {
	case group.KindCall:
		return "Call"
	case group.KindError:
		return "Error"
	default:
		return "Event"
	}
}

func kindPlural(kind group.Kind) string {
	return kindName(kind) + "s"
}

// exportName capitalizes a variant id for use in generated identifiers.
// Overload suffixes survive as-is: transfer_1 -> Transfer_1.
func exportName(variantID string) string {
	if variantID == "" {
		return ""
	}
	return strings.ToUpper(variantID[:1]) + variantID[1:]
}

func byteArrayLit(b []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d]byte{", len(b))
	for i, c := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "0x%02x", c)
	}
	sb.WriteString("}")
	return sb.String()
}
