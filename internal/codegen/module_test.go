package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/ast"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/diag"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/lexer"
	"github.com/sam-rubyy/vulpes-structures-of-programming/internal/parser"
)

func TestResolveModulesLoadsAliasedFile(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.vlp")
	require.NoError(t, os.WriteFile(libPath, []byte(`fx helper() -> int { return 1; }`), 0o644))

	src := `mod("` + libPath + `")::lib;
fx main() -> int { return lib.helper(); }`
	errs := diag.NewCollector("t.vlp", src)
	prog := parser.Parse(lexer.Lex(src), errs)
	require.False(t, errs.HasErrors())

	results := ResolveModules(prog, errs)
	require.Len(t, results, 1)
	assert.Equal(t, "lib", results[0].Alias)
	require.Len(t, results[0].Program.Decls, 1)
	fn, ok := results[0].Program.Decls[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "helper", fn.Name)
}

func TestResolveModulesSkipsMissingFileSilently(t *testing.T) {
	src := `mod("does-not-exist.vlp")::missing;
fx main() -> int { return 0; }`
	errs := diag.NewCollector("t.vlp", src)
	prog := parser.Parse(lexer.Lex(src), errs)
	require.False(t, errs.HasErrors())

	results := ResolveModules(prog, errs)
	assert.Empty(t, results, "a missing module file must be skipped without producing a diagnostic")
	assert.Equal(t, 0, errs.Len())
}

func TestResolveModulesIgnoresNonImportDecls(t *testing.T) {
	src := `fx main() -> int { return 0; }`
	errs := diag.NewCollector("t.vlp", src)
	prog := parser.Parse(lexer.Lex(src), errs)
	require.False(t, errs.HasErrors())

	results := ResolveModules(prog, errs)
	assert.Empty(t, results)
}

func TestResolveModulesFeedsGeneratorFunctionRegistry(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.vlp")
	require.NoError(t, os.WriteFile(libPath, []byte(`fx helper() -> int { return 42; }`), 0o644))

	src := `mod("` + libPath + `")::lib;
fx main() -> int { return lib.helper(); }`
	errs := diag.NewCollector("t.vlp", src)
	prog := parser.Parse(lexer.Lex(src), errs)
	require.False(t, errs.HasErrors())

	imports := ResolveModules(prog, errs)
	gen := New()
	ir := gen.Generate(prog, imports)
	assert.Contains(t, ir, "define i32 @lib_helper()")
	assert.Contains(t, ir, "call i32 @lib_helper()")
}
