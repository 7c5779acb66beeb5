package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hassandahiru/minic/internal/diag"
	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/parser"
	"github.com/hassandahiru/minic/internal/parser/ast"
	"github.com/hassandahiru/minic/internal/semantic"
)

// compile runs the full front end (lex, parse, name analysis, type
// checking) and then code generation, requiring every stage before
// codegen to have produced no diagnostics — mirroring the pipeline's own
// "code gen not attempted" gate (§8 S1).
func compile(t *testing.T, src string) string {
	t.Helper()
	prog, sink := analyze(t, src)
	require.False(t, sink.HasErrors(), "unexpected semantic errors: %v", sink.Errors())
	return Generate(prog, zap.NewNop())
}

func analyze(t *testing.T, src string) (*ast.Program, *diag.Sink) {
	t.Helper()
	l := lexer.New(src, "test.src")
	p := parser.New(l)
	prog, errs := p.ParseProgram()
	require.Empty(t, errs, "unexpected parse errors")

	sink := diag.NewSink()
	log := zap.NewNop()
	semantic.AnalyzeNames(prog, sink, log)
	semantic.CheckTypes(prog, sink, log)
	return prog, sink
}
