package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"legal-info/parser"
	"legal-info/providers/local"
	"legal-info/services"

	"go.uber.org/zap"
)

// Normalisiert eine lokale Datei (oder stdin) und gibt das Ergebnis als JSON aus.
//
//	normalize -format xml contract.xml
//	cat rows.json | normalize -format json
func main() {
	format := flag.String("format", "", "input format: xml, json or yaml (default: from file extension)")
	locale := flag.String("locale", "ru", "language of dates and durations")
	anchor := flag.String("anchor", "first", "duration anchor: first or days")
	rowPath := flag.String("row-path", "root.row", "dot separated path to the rows of an XML document")
	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatalf("can't initialize zap logger: %v", err)
		}
		defer logger.Sync()
	}

	data, name, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	f := parser.Format(strings.ToLower(*format))
	if f == "" {
		if f, err = parser.FormatFromFilename(name); err != nil {
			log.Fatalf("%v (use -format)", err)
		}
	}

	durationAnchor, err := services.ParseDurationAnchor(*anchor)
	if err != nil {
		log.Fatal(err)
	}
	opts := services.PipelineOptions{Locale: *locale, Anchor: durationAnchor}

	input, err := parser.New(strings.Split(*rowPath, ".")).Parse(f, data)
	if err != nil {
		log.Fatalf("parsing input: %v", err)
	}
	pipeline := services.NewPipeline(local.NewRecognizer(logger), opts, logger)
	merged, report, err := pipeline.Process(context.Background(), input)
	if err != nil {
		log.Fatalf("processing: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(merged); err != nil {
		log.Fatalf("writing output: %v", err)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "merge dropped %d, dates rewritten %d, durations rewritten %d\n",
			report.Merge.Dropped, report.Dates.Rewritten, report.Durations.Rewritten)
	}
}

func readInput(path string) ([]byte, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, "", err
	}
	data, err := os.ReadFile(path)
	return data, path, err
}
