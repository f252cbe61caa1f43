package main

import (
	"fmt"
	"io"
	"log"
	"os"

	arg "github.com/alexflint/go-arg"

	"jscheck/internal/analyzer"
	"jscheck/internal/parser"
	"jscheck/internal/reporter"
	"jscheck/internal/scanner"
	"jscheck/internal/tsparse"
)

type args struct {
	Paths   []string `arg:"positional,required" help:"JavaScript files or directories to analyze"`
	Output  string   `arg:"-o,--output" help:"write the report to a file instead of stdout"`
	JSON    bool     `arg:"--json" help:"output results in JSON format"`
	Exclude []string `arg:"--exclude,separate" help:"directory names to skip while scanning"`
	Engine  string   `arg:"--engine" default:"internal" help:"parser engine: internal or treesitter"`
}

func (args) Description() string {
	return "jscheck - static analysis for JavaScript source: security, error, performance, style and complexity findings"
}

func main() {
	var a args
	arg.MustParse(&a)

	if a.Engine != "internal" && a.Engine != "treesitter" {
		log.Fatalf("unknown engine %q (want internal or treesitter)", a.Engine)
	}

	s := scanner.NewScanner(a.Exclude)
	files, err := s.ScanPaths(a.Paths)
	if err != nil {
		log.Fatalf("scanning paths: %v", err)
	}

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No JavaScript files found")
		os.Exit(0)
	}

	var reports []reporter.FileReport
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("reading %s: %v", file, err)
		}

		var program *parser.Program
		var parseErrors []string
		if a.Engine == "treesitter" {
			program, parseErrors = tsparse.Parse(string(content))
		} else {
			program, parseErrors = parser.Parse(string(content))
		}

		for _, msg := range parseErrors {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", file, msg)
		}

		reports = append(reports, reporter.FileReport{
			File:        file,
			Issues:      analyzer.Analyze(program),
			ParseErrors: parseErrors,
		})
	}

	var out io.Writer = os.Stdout
	if a.Output != "" {
		f, err := os.Create(a.Output)
		if err != nil {
			log.Fatalf("creating %s: %v", a.Output, err)
		}
		defer f.Close()
		out = f
	}

	// Findings never change the exit code; only I/O failures do.
	r := reporter.NewReporter(out, a.JSON)
	if err := r.Report(reports); err != nil {
		log.Fatalf("writing report: %v", err)
	}
}
