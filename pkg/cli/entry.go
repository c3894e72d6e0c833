// Package cli implements the solbind command line: compile contract
// interface definitions and check them, list selector tables, emit Go
// bindings, and maintain the reverse selector index.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/solbind/solbind/internal/analyzer"
	"github.com/solbind/solbind/internal/bind"
	"github.com/solbind/solbind/internal/config"
	"github.com/solbind/solbind/internal/diagnostics"
	"github.com/solbind/solbind/internal/gen"
	"github.com/solbind/solbind/internal/lexer"
	"github.com/solbind/solbind/internal/parser"
	"github.com/solbind/solbind/internal/pipeline"
	"github.com/solbind/solbind/internal/seldb"
	"github.com/solbind/solbind/pkg/group"
)

const usage = `Usage: solbind <command> [arguments]

Commands:
  check      <files...>              compile and report diagnostics
  selectors  <files...>              print each group's selector table
  bind       [-o dir] [-pkg name] <files...>
                                     emit Go bindings
  index      [-db path] <files...>   record selectors into the index
  lookup     [-db path] <selector>   reverse-lookup a selector

Inputs default to the 'inputs' list of solbind.yaml when no files are given.
`

// Run executes one command and returns the process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	manifest, err := config.LoadManifest(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "solbind:", err)
		return 1
	}

	switch args[0] {
	case "check":
		return runCheck(manifest, args[1:])
	case "selectors":
		return runSelectors(manifest, args[1:])
	case "bind":
		return runBind(manifest, args[1:])
	case "index":
		return runIndex(manifest, args[1:])
	case "lookup":
		return runLookup(manifest, args[1:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "solbind: unknown command %q\n\n%s", args[0], usage)
		return 1
	}
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// compileFile runs the full pipeline over one source file.
func compileFile(path string) ([]*group.Contract, []*diagnostics.DiagnosticError) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, []*diagnostics.DiagnosticError{{
			Code:    diagnostics.ErrP000,
			Message: "cannot read source file: " + err.Error(),
			File:    path,
		}}
	}

	ctx := pipeline.NewPipelineContext(string(source))
	ctx.FilePath = path

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&bind.BinderProcessor{},
	)
	ctx = processingPipeline.Run(ctx)
	return ctx.Contracts, ctx.Errors
}

// compileAll compiles every input file and pools contracts and diagnostics.
func compileAll(manifest *config.Manifest, files []string) ([]*group.Contract, []*diagnostics.DiagnosticError) {
	if len(files) == 0 {
		files = manifest.Inputs
	}

	var contracts []*group.Contract
	var diags []*diagnostics.DiagnosticError
	for _, f := range files {
		if !isSourceFile(f) {
			diags = append(diags, &diagnostics.DiagnosticError{
				Code:    diagnostics.ErrP000,
				Message: "not a recognized source file",
				File:    f,
			})
			continue
		}
		cs, errs := compileFile(f)
		contracts = append(contracts, cs...)
		diags = append(diags, errs...)
	}
	return contracts, diags
}

func reportDiagnostics(diags []*diagnostics.DiagnosticError) {
	colored := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	for _, d := range diags {
		line := d.Error()
		if colored {
			line = "\x1b[31m" + line + "\x1b[0m"
		}
		fmt.Fprintln(os.Stderr, line)
	}
}

func runCheck(manifest *config.Manifest, args []string) int {
	contracts, diags := compileAll(manifest, args)
	if len(diags) > 0 {
		reportDiagnostics(diags)
		return 1
	}
	for _, c := range contracts {
		groups := c.Groups()
		fmt.Printf("%s: %d calls, %d errors, %d events, %d groups\n",
			c.Name, len(c.CallMembers), len(c.ErrorMembers), len(c.EventMembers), len(groups))
	}
	return 0
}

func runSelectors(manifest *config.Manifest, args []string) int {
	contracts, diags := compileAll(manifest, args)
	if len(diags) > 0 {
		reportDiagnostics(diags)
		return 1
	}

	for _, c := range contracts {
		for _, kind := range []group.Kind{group.KindCall, group.KindError, group.KindEvent} {
			members := c.MembersOf(kind)
			if len(members) == 0 {
				continue
			}
			printKind(c, kind, members)
		}
	}
	return 0
}

func printKind(c *group.Contract, kind group.Kind, members []group.Member) {
	var g *group.Group
	switch kind {
	case group.KindCall:
		g = c.Calls
	case group.KindError:
		g = c.Errs
	case group.KindEvent:
		g = c.Events
	}

	if g == nil {
		// Standalone definition: no dispatch group was built.
		for _, m := range members {
			fmt.Printf("%s.%s (%s, standalone): 0x%x\n", c.Name, m.VariantID, kind, m.Selector)
		}
		return
	}

	fmt.Printf("%s: count=%d minDataLength=%d\n", g.Name(), g.Count(), g.MinDataLength())
	for i := 0; ; i++ {
		sel, ok := g.SelectorAt(i)
		if !ok {
			break
		}
		fmt.Printf("  0x%x\n", sel)
	}
}

func runBind(manifest *config.Manifest, args []string) int {
	fs := flag.NewFlagSet("bind", flag.ContinueOnError)
	outDir := fs.String("o", manifest.Output, "output directory")
	pkg := fs.String("pkg", manifest.Package, "generated package name")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	contracts, diags := compileAll(manifest, fs.Args())
	if len(diags) > 0 {
		reportDiagnostics(diags)
		return 1
	}

	dir := *outDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "solbind:", err)
		return 1
	}

	generator := &gen.Generator{Package: *pkg}
	for _, c := range contracts {
		out, err := generator.Generate(c, "")
		if err != nil {
			fmt.Fprintln(os.Stderr, "solbind:", err)
			return 1
		}
		path := filepath.Join(dir, strings.ToLower(c.Name)+".go")
		if err := os.WriteFile(path, out, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "solbind:", err)
			return 1
		}
		fmt.Println("wrote", path)
	}
	return 0
}

func runIndex(manifest *config.Manifest, args []string) int {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	dbPath := fs.String("db", manifest.Index, "selector index path")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	contracts, diags := compileAll(manifest, fs.Args())
	if len(diags) > 0 {
		reportDiagnostics(diags)
		return 1
	}

	store, err := seldb.Open(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solbind:", err)
		return 1
	}
	defer store.Close()

	runID, err := store.Record(contracts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solbind:", err)
		return 1
	}
	fmt.Printf("indexed %d contracts (run %s)\n", len(contracts), runID)
	return 0
}

func runLookup(manifest *config.Manifest, args []string) int {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	dbPath := fs.String("db", manifest.Index, "selector index path")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "solbind: lookup takes exactly one selector")
		return 1
	}

	store, err := seldb.Open(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solbind:", err)
		return 1
	}
	defer store.Close()

	entries, err := store.Lookup(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "solbind:", err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Println("no matches")
		return 1
	}
	for _, e := range entries {
		fmt.Printf("0x%s  %-5s  %s.%s  %s\n", e.Selector, e.Kind, e.Contract, e.Variant, e.Signature)
	}
	return 0
}
