// Package analyzer validates parsed contract declarations before binding:
// name uniqueness, parameter type resolution, and event indexing limits.
package analyzer

import (
	"strconv"

	"github.com/solbind/solbind/internal/ast"
	"github.com/solbind/solbind/internal/diagnostics"
	"github.com/solbind/solbind/pkg/typesys"
)

// Non-anonymous events spend one topic slot on the signature topic, leaving
// three for indexed parameters; anonymous events have all four.
const (
	maxIndexedParams          = 3
	maxIndexedParamsAnonymous = 4
)

type analyzer struct {
	errors []*diagnostics.DiagnosticError
}

func (a *analyzer) addError(code diagnostics.Code, node ast.Node, msg string) {
	a.errors = append(a.errors, diagnostics.NewError(code, node.GetToken(), msg))
}

func (a *analyzer) checkProgram(prog *ast.Program) {
	seen := make(map[string]bool)
	for _, c := range prog.Contracts {
		if seen[c.Name] {
			a.addError(diagnostics.ErrA001, c, "duplicate contract name '"+c.Name+"'")
			continue
		}
		seen[c.Name] = true
		a.checkContract(c)
	}
}

func (a *analyzer) checkContract(c *ast.ContractDecl) {
	a.checkFunctions(c)

	names := make(map[string]bool)
	for _, e := range c.Errors {
		if names[e.Name] {
			a.addError(diagnostics.ErrA002, e, "duplicate error '"+e.Name+"' in contract '"+c.Name+"'")
		}
		names[e.Name] = true
		a.checkParams(e, e.Params)
	}

	names = make(map[string]bool)
	for _, e := range c.Events {
		if names[e.Name] {
			a.addError(diagnostics.ErrA002, e, "duplicate event '"+e.Name+"' in contract '"+c.Name+"'")
		}
		names[e.Name] = true
		a.checkParams(e, e.Params)
		a.checkIndexed(e)
	}
}

// checkFunctions resolves parameter types and rejects exact duplicate
// canonical signatures. Same-name functions with different parameters are
// overloads and legal; the binder disambiguates their variant ids.
func (a *analyzer) checkFunctions(c *ast.ContractDecl) {
	signatures := make(map[string]bool)
	for _, f := range c.Functions {
		types, ok := a.resolveParams(f, f.Params)
		for _, r := range f.Returns {
			if _, err := typesys.Parse(r.TypeName); err != nil {
				a.addError(diagnostics.ErrA004, r, err.Error())
			}
		}
		if !ok {
			continue
		}
		sig := canonicalSignature(f.Name, types)
		if signatures[sig] {
			a.addError(diagnostics.ErrA003, f, "duplicate function signature "+sig)
		}
		signatures[sig] = true
	}
}

func (a *analyzer) checkParams(owner ast.Node, params []*ast.Param) {
	a.resolveParams(owner, params)
}

func (a *analyzer) resolveParams(owner ast.Node, params []*ast.Param) ([]typesys.Type, bool) {
	types := make([]typesys.Type, 0, len(params))
	ok := true
	for _, p := range params {
		t, err := typesys.Parse(p.TypeName)
		if err != nil {
			a.addError(diagnostics.ErrA004, p, err.Error())
			ok = false
			continue
		}
		types = append(types, t)
	}
	return types, ok
}

func (a *analyzer) checkIndexed(e *ast.EventDecl) {
	indexed := 0
	for _, p := range e.Params {
		if p.Indexed {
			indexed++
		}
	}
	limit := maxIndexedParams
	if e.Anonymous {
		limit = maxIndexedParamsAnonymous
	}
	if indexed > limit {
		a.addError(diagnostics.ErrA006, e,
			"event '"+e.Name+"' has "+strconv.Itoa(indexed)+
				" indexed parameters, at most "+strconv.Itoa(limit)+" allowed")
	}
}

func canonicalSignature(name string, types []typesys.Type) string {
	sig := name + "("
	for i, t := range types {
		if i > 0 {
			sig += ","
		}
		sig += t.Canonical()
	}
	return sig + ")"
}
