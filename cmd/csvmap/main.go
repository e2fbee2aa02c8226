package main

import (
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	csvmap "github.com/reoring/csvmap"
	"github.com/reoring/csvmap/codec"
	"github.com/reoring/csvmap/i18n"
	csvsrc "github.com/reoring/csvmap/source/csv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "convert":
		convertCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "csvmap CLI\n\nUsage:\n  csvmap convert -schema schema.yaml -in data.csv [-o out.json] [-lang en|ja] [-nfc]\n\nThe schema file declares the column table:\n\n  timeLayout: 2006-01-02\n  columns:\n    - name: ID\n      type: int\n    - name: Username\n      type: string")
}

// schemaFile is the on-disk shape of a column table declaration.
type schemaFile struct {
	TimeLayout string          `yaml:"timeLayout"`
	Columns    []csvmap.Column `yaml:"columns"`
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var schemaPath string
	var in string
	var out string
	var lang string
	var nfc bool
	fs.StringVar(&schemaPath, "schema", "", "YAML file declaring the column table")
	fs.StringVar(&in, "in", "", "input CSV file")
	fs.StringVar(&out, "o", "", "output filename (default: stdout)")
	fs.StringVar(&lang, "lang", "en", "error message language (en/ja)")
	fs.BoolVar(&nfc, "nfc", false, "normalize input text to Unicode NFC")
	_ = fs.Parse(args)
	if schemaPath == "" || in == "" {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(lang)

	raw, err := os.ReadFile(schemaPath)
	if err != nil {
		fatalf("reading schema: %v", err)
	}
	var schema schemaFile
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		fatalf("parsing schema: %v", err)
	}
	layout := schema.TimeLayout
	if layout == "" {
		layout = "2006-01-02T15:04:05Z07:00" // RFC3339
	}

	m := csvmap.ForCSV()
	codec.RegisterTime(m.Registry(), layout)

	var opts []csvsrc.Option
	if nfc {
		opts = append(opts, csvsrc.WithNFCNormalization())
	}
	src, err := csvmap.FileSource(in, opts...)
	if err != nil {
		fatalf("opening %s: %v", in, err)
	}
	recs, err := csvmap.MapRecords(m, src, schema.Columns)
	if err != nil {
		reportIssues(err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		fatalf("encoding output: %v", err)
	}
	data = append(data, '\n')
	if out == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			fatalf("writing output: %v", err)
		}
		return
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

// reportIssues prints one localized line per issue, falling back to the plain
// error text for non-Issues errors.
func reportIssues(err error) {
	iss, ok := csvmap.AsIssues(err)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", it.Path, i18n.T(it.Code, nil), it.Message)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "csvmap: "+format+"\n", args...)
	os.Exit(1)
}
