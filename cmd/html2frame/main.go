/* SPDX-License-Identifier: BSD-2-Clause */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ricardobranco777/html2frame/htmltable"
	"github.com/ricardobranco777/html2frame/internal/logger"
	"github.com/ricardobranco777/html2frame/pretty"
)

import flag "github.com/spf13/pflag"

const Version = "0.1.0"

type options struct {
	htmltable.Options
	Interactive bool
	Output      OutputConfig
}

func main() {
	var opts struct {
		config      string
		delim       string
		tables      string
		columns     []string
		locator     string
		output      string
		encoding    string
		logLevel    string
		logFile     string
		footer      bool
		interactive bool
		skipHeader  bool
		tsv         bool
		version     bool
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [FILE]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.config, "config", defaultConfigPath(), "configuration file")
	flag.StringVarP(&opts.delim, "delimiter", "d", ",", "CSV delimiter")
	flag.BoolVarP(&opts.skipHeader, "no-header", "H", false, "skip CSV header line")
	flag.StringVarP(&opts.tables, "table", "t", "", "select tables by index or name")
	flag.StringSliceVarP(&opts.columns, "columns", "c", nil, "column names, one per header cell")
	flag.BoolVarP(&opts.footer, "footer", "f", false, "convert the footer rows")
	flag.StringVarP(&opts.locator, "locator", "l", "", "CSS selector of the footer rows")
	flag.BoolVarP(&opts.interactive, "interactive", "i", false, "emit element locators as JSON")
	flag.StringVarP(&opts.output, "output", "o", "pretty", "output format: pretty, csv or json")
	flag.StringVarP(&opts.encoding, "encoding", "e", "", "input encoding (default: detect)")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	flag.StringVar(&opts.logFile, "log-file", "", "log file (default: stderr)")
	flag.BoolVarP(&opts.tsv, "tsv", "T", false, "use TAB as delimiter")
	flag.BoolVarP(&opts.version, "version", "", false, "print version and exit")
	flag.Parse()

	if opts.version {
		fmt.Printf("html2frame v%s %v %s/%s\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	log.SetFlags(0)
	log.SetPrefix("ERROR: ")

	config, err := LoadConfigFromFile(opts.config)
	if err != nil {
		log.Fatal(err)
	}

	set := flag.CommandLine.Changed
	if set("output") {
		config.Output.Format = opts.output
	}
	if set("delimiter") {
		config.Output.Delimiter = opts.delim
	}
	if opts.tsv {
		config.Output.Delimiter = "\t"
	}
	if set("no-header") {
		config.Output.NoHeader = opts.skipHeader
	}
	if set("encoding") {
		config.Output.Encoding = opts.encoding
	}
	if set("log-level") {
		config.Log.Level = opts.logLevel
	}
	if set("log-file") {
		config.Log.File = opts.logFile
	}
	if err := config.Validate(); err != nil {
		log.Fatal(err)
	}

	closer, err := logger.Init(config.Log.File, config.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	f := os.Stdin
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	if flag.NArg() == 1 {
		f, err = os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	src, err := readInput(f, config.Output.Encoding)
	if err != nil {
		log.Fatal(err)
	}

	sel, err := htmltable.ParseSelector(opts.tables)
	if err != nil {
		log.Fatal(err)
	}
	sources, err := selectTables(src, sel)
	if err != nil {
		log.Fatal(err)
	}

	o := options{
		Options: htmltable.Options{
			Header:    opts.columns,
			Footer:    opts.footer,
			LocatorID: opts.locator,
		},
		Interactive: opts.interactive,
		Output:      config.Output,
	}
	if err := render(os.Stdout, sources, o); err != nil {
		log.Fatal(err)
	}
}

// readInput decodes r to UTF-8, sniffing the charset unless one is named.
func readInput(r io.Reader, encoding string) (string, error) {
	var err error
	if encoding == "" {
		r, err = charset.NewReader(r, "")
	} else {
		enc, lerr := htmlindex.Get(encoding)
		if lerr != nil {
			return "", fmt.Errorf("encoding %q: %w", encoding, lerr)
		}
		r = enc.NewDecoder().Reader(r)
	}
	if err != nil {
		return "", err
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// selectTables returns the markup of every selected table, or the whole
// document when the selector is empty.
func selectTables(src string, sel htmltable.Selector) ([]string, error) {
	if sel.Empty() {
		return []string{src}, nil
	}

	tables, err := htmltable.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	tables = sel.Apply(tables)
	if len(tables) == 0 {
		return nil, fmt.Errorf("no table matches the selection")
	}

	sources := make([]string, 0, len(tables))
	for _, t := range tables {
		sources = append(sources, t.HTML)
	}
	return sources, nil
}

func render(w io.Writer, sources []string, o options) error {
	if o.Interactive {
		frames := make([][]htmltable.LocatorRow, 0, len(sources))
		for _, src := range sources {
			rows, err := htmltable.ToInteractiveDataFrame(src, &o.Options)
			if err != nil {
				return err
			}
			frames = append(frames, rows)
		}
		return writeJSON(w, frames)
	}

	frames := make([][]htmltable.Row, 0, len(sources))
	for _, src := range sources {
		rows, err := htmltable.ToDataFrame(src, &o.Options)
		if err != nil {
			return err
		}
		frames = append(frames, rows)
	}

	switch o.Output.Format {
	case "csv":
		enc := htmltable.NewCSVEncoder()
		enc.Comma = []rune(o.Output.Delimiter)[0]
		enc.NoHeader = o.Output.NoHeader
		return enc.Encode(w, frames...)
	case "json":
		return writeJSON(w, frames)
	default:
		for _, rows := range frames {
			if err := pretty.Print(w, rows); err != nil {
				return err
			}
		}
		return nil
	}
}

// writeJSON prints a single frame as an array of rows, several frames
// as an array of arrays.
func writeJSON[T any](w io.Writer, frames [][]T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if len(frames) == 1 {
		return enc.Encode(frames[0])
	}
	return enc.Encode(frames)
}
