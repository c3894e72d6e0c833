package gen

import (
	"strings"
	"testing"

	"github.com/solbind/solbind/internal/analyzer"
	"github.com/solbind/solbind/internal/bind"
	"github.com/solbind/solbind/internal/lexer"
	"github.com/solbind/solbind/internal/parser"
	"github.com/solbind/solbind/internal/pipeline"
	"github.com/solbind/solbind/pkg/group"
)

func compileOne(t *testing.T, source string) *group.Contract {
	t.Helper()
	ctx := pipeline.NewPipelineContext(source)
	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&bind.BinderProcessor{},
	).Run(ctx)
	if len(ctx.Errors) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Errors)
	}
	if len(ctx.Contracts) != 1 {
		t.Fatalf("got %d contracts, want 1", len(ctx.Contracts))
	}
	return ctx.Contracts[0]
}

const tokenSource = `
contract Token {
	function transfer(address to, uint256 amount) returns (bool);
	function approve(address spender, uint256 amount) returns (bool);
	error Overdrawn(uint256 by);
	event Transfer(address indexed from, address indexed to, uint256 value);
	event Approval(address indexed owner, address indexed spender, uint256 value);
}`

func TestGenerateToken(t *testing.T) {
	c := compileOne(t, tokenSource)

	out, err := (&Generator{}).Generate(c, "token.sol")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	code := string(out)

	wantFragments := []string{
		"// Code generated by solbind. DO NOT EDIT.",
		"// Source: token.sol",
		"package token",
		"SelTransferCall = [4]byte{0xa9, 0x05, 0x9c, 0xbb}",
		"[4]byte{0x09, 0x5e, 0xa7, 0xb3}", // SelApproveCall
		`SigTransferCall = "transfer(address,uint256)"`,
		"SelOverdrawnError",
		"TopicTransferEvent = [32]byte{0xdd, 0xf2",
		"func NewTokenCalls() *group.Group {",
		"func NewTokenEvents() *group.Group {",
		"func IsTransferCall(v group.Value) bool",
		"func AsTransferCall(v group.Value) (*codec.Tuple, bool)",
		"func newMember(",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(code, frag) {
			t.Errorf("generated code lacks %q", frag)
		}
	}

	// The lone error builds no group, so no constructor for it.
	if strings.Contains(code, "NewTokenErrors") {
		t.Errorf("constructor emitted for a single-member kind")
	}
}

func TestGeneratePackageOverride(t *testing.T) {
	c := compileOne(t, tokenSource)
	out, err := (&Generator{Package: "bindings"}).Generate(c, "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	code := string(out)
	if !strings.Contains(code, "package bindings") {
		t.Errorf("package override not honored")
	}
	if strings.Contains(code, "// Source:") {
		t.Errorf("empty source still produced a provenance line")
	}
}

func TestGenerateOverloads(t *testing.T) {
	c := compileOne(t, `
contract Registry {
	function get(uint256 id);
	function get(address owner);
}`)
	out, err := (&Generator{}).Generate(c, "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	code := string(out)
	for _, frag := range []string{
		"SelGetCall",
		"SelGet_1Call",
		"func IsGetCall(",
		"func IsGet_1Call(",
	} {
		if !strings.Contains(code, frag) {
			t.Errorf("generated code lacks %q", frag)
		}
	}
}

func TestExportName(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"transfer", "Transfer"},
		{"transfer_1", "Transfer_1"},
		{"Overdrawn", "Overdrawn"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := exportName(tc.in); got != tc.want {
			t.Errorf("exportName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
