// Command minic compiles a single source file through the full pipeline:
// lexing, parsing, name analysis, type checking, and (when no diagnostic
// was raised) code generation, writing the resulting MIPS-style assembly
// to stdout or an output file (§6).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hassandahiru/minic/internal/codegen"
	"github.com/hassandahiru/minic/internal/diag"
	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/parser"
	"github.com/hassandahiru/minic/internal/semantic"
)

func main() {
	app := &cli.App{
		Name:      "minic",
		Usage:     "compile a source file to MIPS-style assembly",
		ArgsUsage: "<source-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "write assembly to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug-level stage logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "minic: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) (err error) {
	if c.NArg() < 1 {
		return cli.Exit("expected a source file argument", 1)
	}
	filename := c.Args().First()

	log := newLogger(c.Bool("verbose"))
	defer log.Sync() //nolint:errcheck

	// Internal invariant violations (zap.Panic calls in names.go,
	// typecheck.go, codegen.go) are programmer errors in a pass that
	// should never see unresolved state by the time it runs; recover
	// here so a bug in one compilation surfaces as a clean message
	// instead of taking the whole process down.
	defer func() {
		if r := recover(); r != nil {
			err = cli.Exit(fmt.Sprintf("internal error: %v", r), 1)
		}
	}()

	var source []byte
	var readErr error
	if filename == "-" {
		source, readErr = io.ReadAll(os.Stdin)
	} else {
		source, readErr = os.ReadFile(filename)
	}
	if readErr != nil {
		return cli.Exit(fmt.Sprintf("reading %s: %v", filename, readErr), 1)
	}

	l := lexer.New(string(source), filename)
	p := parser.New(l)
	program, parseErrs := p.ParseProgram()
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintf(os.Stderr, "error: %v\n", e)
		}
		return cli.Exit("", 1)
	}

	sink := diag.NewSink()
	semantic.AnalyzeNames(program, sink, log)
	semantic.CheckTypes(program, sink, log)

	if sink.HasErrors() {
		sink.Render(os.Stderr)
		return cli.Exit("", 1)
	}

	asm := codegen.Generate(program, log)

	if out := c.String("out"); out != "" {
		if writeErr := os.WriteFile(out, []byte(asm), 0o644); writeErr != nil {
			return cli.Exit(fmt.Sprintf("writing %s: %v", out, writeErr), 1)
		}
		return nil
	}
	fmt.Print(asm)
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
