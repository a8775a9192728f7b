// Command decafc is the entry point of the Decaf semantic checker.
//
// Pipeline:
//  1. Lexical analysis (tokenization)
//  2. Syntax analysis (parsing)
//  3. Name resolution (class graph, scopes, overrides)
//  4. Type checking (expression typing, lambda inference, capture analysis)
//  5. Codegen report, plus an optional scope-tree dump gated by decafc.yaml
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/hdahiru/decafc/internal/codegen"
	"github.com/hdahiru/decafc/internal/config"
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/parser"
	"github.com/hdahiru/decafc/internal/semantic"
)

func main() {
	cfg, err := config.LoadOrDefault(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading decafc.yaml: %v\n", err)
		os.Exit(1)
	}

	filename := cfg.Entry
	if len(os.Args) >= 2 {
		filename = os.Args[1]
	}
	if filename == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s <source-file>\n", os.Args[0])
		os.Exit(1)
	}

	color := isatty.IsTerminal(os.Stderr.Fd())
	if cfg.Color != nil {
		color = *cfg.Color
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
		os.Exit(1)
	}

	lex := lexer.New(string(source), filename)
	p := parser.New(lex)
	top, parseErrors := p.ParseProgram()
	if len(parseErrors) > 0 {
		fmt.Fprintln(os.Stderr, "syntax errors:")
		for _, e := range parseErrors {
			printDiag(color, e.Error())
		}
		os.Exit(1)
	}
	fmt.Println("✓ parsing successful")

	sink := &semantic.Sink{}
	namer := semantic.NewNamer(sink)
	safe := namer.Resolve(top)
	if !safe {
		fmt.Fprintln(os.Stderr, "name resolution errors:")
		for _, d := range sink.Diagnostics() {
			printDiag(color, d.String())
		}
		os.Exit(1)
	}
	// Outside strict mode a NoAbstract diagnostic on a class unrelated to
	// Main doesn't stop the pipeline here; it rides along in sink and is
	// reported with whatever the Typer finds once checking finishes.
	if cfg.Strict && sink.HasErrors() {
		fmt.Fprintln(os.Stderr, "name resolution errors:")
		for _, d := range sink.Diagnostics() {
			printDiag(color, d.String())
		}
		os.Exit(1)
	}
	fmt.Println("✓ name resolution successful")

	typer := semantic.NewTyper(namer.Stack, sink)
	typer.Check(top)
	if sink.HasErrors() {
		fmt.Fprintln(os.Stderr, "type errors:")
		for _, d := range sink.Diagnostics() {
			printDiag(color, d.String())
		}
		os.Exit(1)
	}
	fmt.Println("✓ type checking successful")

	if cfg.DebugScopes {
		fmt.Fprint(os.Stderr, semantic.DumpScopeTree(namer.Stack.Global))
	}

	report := codegen.Generate(top)
	for _, line := range report.Lines {
		fmt.Println(line)
	}
}

func printDiag(color bool, msg string) {
	if color {
		fmt.Fprintf(os.Stderr, "\033[31m  %s\033[0m\n", msg)
		return
	}
	fmt.Fprintf(os.Stderr, "  %s\n", msg)
}
