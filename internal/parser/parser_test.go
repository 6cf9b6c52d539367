package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/ast"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/diag"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Collector) {
	t.Helper()
	errs := diag.NewCollector("t.vlp", src)
	prog := Parse(lexer.Lex(src), errs)
	return prog, errs
}

func TestParseFunctionDefinition(t *testing.T) {
	prog, errs := parse(t, `fx add(int: a, int: b) -> int { return a + b; }`)
	require.False(t, errs.HasErrors())
	require.Len(t, prog.Decls, 1)

	fn, ok := prog.Decls[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, "int", fn.ReturnType)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, ast.Parameter{Type: "int", Name: "a"}, fn.Parameters[0])
	assert.Equal(t, ast.Parameter{Type: "int", Name: "b"}, fn.Parameters[1])
	require.Len(t, fn.Body.Stmts, 1)

	ret, ok := fn.Body.Stmts[0].(*ast.Return)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestParseParameterAutoName(t *testing.T) {
	prog, errs := parse(t, `fx f(int, int) { }`)
	require.False(t, errs.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDef)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "p0", fn.Parameters[0].Name)
	assert.Equal(t, "p1", fn.Parameters[1].Name)
}

func TestParsePrototypeYieldsNoDecl(t *testing.T) {
	prog, errs := parse(t, `fx extern_fn(int: a);`)
	require.False(t, errs.HasErrors())
	assert.Empty(t, prog.Decls, "a prototype definition should not produce a top-level declaration")
}

func TestParseModuleImport(t *testing.T) {
	prog, errs := parse(t, `mod("lib.vlp")::lib;`)
	require.False(t, errs.HasErrors())
	require.Len(t, prog.Decls, 1)
	imp := prog.Decls[0].(*ast.ModuleImport)
	assert.Equal(t, "lib.vlp", imp.Path)
	assert.Equal(t, "lib", imp.Alias)
}

func TestParseForRangeAndWhile(t *testing.T) {
	prog, errs := parse(t, `fx main() { for i in 0..10 { while (i < 5) { i = i + 1; } } }`)
	require.False(t, errs.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDef)
	forStmt, ok := fn.Body.Stmts[0].(*ast.For)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Iterator)
	_, ok = forStmt.Body.Stmts[0].(*ast.While)
	assert.True(t, ok)
}

func TestParsePrintFormattedVsBare(t *testing.T) {
	prog, errs := parse(t, `fx main() { print("got {}", 1); print(2); }`)
	require.False(t, errs.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDef)

	formatted := fn.Body.Stmts[0].(*ast.Print)
	assert.True(t, formatted.Formatted)
	assert.Equal(t, "got {}", formatted.Format)
	require.Len(t, formatted.Args, 1)

	bare := fn.Body.Stmts[1].(*ast.Print)
	assert.False(t, bare.Formatted)
	assert.Equal(t, "{}", bare.Format)
}

func TestParseNamespacedCall(t *testing.T) {
	prog, errs := parse(t, `fx main() { lib.helper(1, 2); }`)
	require.False(t, errs.HasErrors())
	fn := prog.Decls[0].(*ast.FunctionDef)
	exprStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.Call)
	assert.Equal(t, "lib", call.Namespace)
	assert.Equal(t, "helper", call.Name)
	assert.Len(t, call.Args, 2)
}

func TestParseErrorRecoversToNextDeclaration(t *testing.T) {
	// The first declaration's '+' has no right operand, which should produce
	// exactly one diagnostic, after which the parser resynchronizes on the
	// following 'var' and keeps going.
	prog, errs := parse(t, "1 + \nvar x = 2;")
	assert.Equal(t, 1, errs.Len())
	require.Len(t, prog.Decls, 1)
	decl, ok := prog.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
}

func TestSynchronizeDoesNotPanicAtStreamStart(t *testing.T) {
	// A malformed program whose very first token is invalid exercises the
	// pos==0 guard in synchronize directly; it must not panic.
	assert.NotPanics(t, func() {
		parse(t, ")")
	})
}
