package analyzer

import (
	"strconv"

	"github.com/solbind/solbind/internal/ast"
)

// VariantIDs assigns a unique variant identifier to every function, in
// declaration order. Functions with a unique name keep it; overloads keep
// the bare name for the first occurrence and get name_1, name_2, ... for the
// rest. Errors and events need no disambiguation: their names are unique
// within a contract by the analyzer's checks.
func VariantIDs(functions []*ast.FunctionDecl) []string {
	counts := make(map[string]int, len(functions))
	for _, f := range functions {
		counts[f.Name]++
	}

	seen := make(map[string]int, len(functions))
	ids := make([]string, len(functions))
	for i, f := range functions {
		n := seen[f.Name]
		seen[f.Name] = n + 1
		if counts[f.Name] == 1 || n == 0 {
			ids[i] = f.Name
			continue
		}
		ids[i] = f.Name + "_" + strconv.Itoa(n)
	}
	return ids
}
