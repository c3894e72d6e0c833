// Package bind assembles analyzed contract declarations into compiled
// artifacts: member descriptors (selector, codec, minimum payload size) and
// the interface groups built from them.
package bind

import (
	"errors"

	"github.com/solbind/solbind/internal/analyzer"
	"github.com/solbind/solbind/internal/ast"
	"github.com/solbind/solbind/internal/diagnostics"
	"github.com/solbind/solbind/internal/selector"
	"github.com/solbind/solbind/pkg/codec"
	"github.com/solbind/solbind/pkg/group"
	"github.com/solbind/solbind/pkg/typesys"
)

// Bind compiles one contract declaration. The declaration must have passed
// the analyzer; malformed types here are internal errors. On any error no
// partial artifact is returned.
func Bind(c *ast.ContractDecl) (*group.Contract, []*diagnostics.DiagnosticError) {
	var diags []*diagnostics.DiagnosticError

	contract := &group.Contract{Name: c.Name}

	variantIDs := analyzer.VariantIDs(c.Functions)
	for i, f := range c.Functions {
		types, err := paramTypes(f.Params)
		if err != nil {
			diags = append(diags, diagnostics.NewError(diagnostics.ErrB001, f.GetToken(), err.Error()))
			continue
		}
		sig := selector.Signature(f.Name, types)
		sel := selector.Selector4(sig)
		contract.CallMembers = append(contract.CallMembers, member(
			group.KindCall, variantIDs[i], variantIDs[i]+"Call", sig, sel[:], types,
		))
	}

	for _, e := range c.Errors {
		types, err := paramTypes(e.Params)
		if err != nil {
			diags = append(diags, diagnostics.NewError(diagnostics.ErrB001, e.GetToken(), err.Error()))
			continue
		}
		sig := selector.Signature(e.Name, types)
		sel := selector.Selector4(sig)
		contract.ErrorMembers = append(contract.ErrorMembers, member(
			group.KindError, e.Name, e.Name, sig, sel[:], types,
		))
	}

	for _, e := range c.Events {
		types, err := paramTypes(e.Params)
		if err != nil {
			diags = append(diags, diagnostics.NewError(diagnostics.ErrB001, e.GetToken(), err.Error()))
			continue
		}
		sig := selector.Signature(e.Name, types)
		topic := selector.Topic32(sig)
		contract.EventMembers = append(contract.EventMembers, member(
			group.KindEvent, e.Name, e.Name, sig, topic[:], types,
		))
	}

	if len(diags) > 0 {
		return nil, diags
	}

	for _, b := range []struct {
		kind    group.Kind
		members []group.Member
		dst     **group.Group
	}{
		{group.KindCall, contract.CallMembers, &contract.Calls},
		{group.KindError, contract.ErrorMembers, &contract.Errs},
		{group.KindEvent, contract.EventMembers, &contract.Events},
	} {
		g, err := group.Compile(c.Name, b.kind, b.members)
		if err != nil {
			diags = append(diags, groupError(c, err))
			continue
		}
		*b.dst = g
	}

	if len(diags) > 0 {
		return nil, diags
	}
	return contract, nil
}

func member(kind group.Kind, variantID, payloadTypeID, sig string, sel []byte, types []typesys.Type) group.Member {
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

func paramTypes(params []*ast.Param) ([]typesys.Type, error) {
	types := make([]typesys.Type, len(params))
	for i, p := range params {
		t, err := typesys.Parse(p.TypeName)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

func groupError(c *ast.ContractDecl, err error) *diagnostics.DiagnosticError {
	code := diagnostics.ErrB001
	var dup *group.DuplicateSelectorError
	if errors.As(err, &dup) {
		code = diagnostics.ErrB002
	}
	return diagnostics.NewError(code, c.GetToken(), err.Error())
}
