package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hassandahiru/minic/internal/diag"
	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/parser"
	"github.com/hassandahiru/minic/internal/parser/ast"
	"github.com/hassandahiru/minic/internal/symtab"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src, "test.src")
	p := parser.New(l)
	prog, errs := p.ParseProgram()
	require.Empty(t, errs, "unexpected parse errors")
	return prog
}

// analyzeNames parses src and runs only name analysis, returning the
// program, the struct-definition arena, and the diagnostics sink.
func analyzeNames(t *testing.T, src string) (*ast.Program, *symtab.DefArena, *diag.Sink) {
	t.Helper()
	prog := mustParse(t, src)
	sink := diag.NewSink()
	arena := AnalyzeNames(prog, sink, zap.NewNop())
	return prog, arena, sink
}

// analyzeAndCheck runs both passes in sequence, as the pipeline does.
func analyzeAndCheck(t *testing.T, src string) (*ast.Program, *diag.Sink) {
	t.Helper()
	prog := mustParse(t, src)
	sink := diag.NewSink()
	log := zap.NewNop()
	AnalyzeNames(prog, sink, log)
	CheckTypes(prog, sink, log)
	return prog, sink
}

func diagMessages(sink *diag.Sink) []string {
	out := make([]string, len(sink.Errors()))
	for i, d := range sink.Errors() {
		out[i] = d.Message
	}
	return out
}
