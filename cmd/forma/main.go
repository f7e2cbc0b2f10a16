package main

import (
	"flag"
	"fmt"
	"os"

	forma "github.com/soracane/forma"
	"github.com/soracane/forma/schemafile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "type":
		typeCmd(os.Args[2:])
	case "lint-dups":
		lintDupsCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "forma CLI\n\nUsage:\n  forma validate -schema decl.yaml -in doc.json [-yaml] [-max-depth N] [-max-bytes N] [-dup-error]\n  forma type -schema decl.yaml\n  forma lint-dups -in doc.json [-limit N]")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath string
	var inPath string
	var asYAML bool
	var dupError bool
	var maxDepth int
	var maxBytes int64
	fs.StringVar(&schemaPath, "schema", "", "schema declaration file (YAML or JSON)")
	fs.StringVar(&inPath, "in", "", "document to validate")
	fs.BoolVar(&asYAML, "yaml", false, "treat the document as YAML instead of JSON")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum container nesting, 0 = unlimited")
	fs.Int64Var(&maxBytes, "max-bytes", 0, "maximum document size in bytes, 0 = unlimited")
	fs.BoolVar(&dupError, "dup-error", false, "reject documents that repeat a JSON object key")
	_ = fs.Parse(args)
	if schemaPath == "" || inPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	s := compileSchema(schemaPath)
	doc, err := os.ReadFile(inPath)
	if err != nil {
		fatalf("reading document: %v", err)
	}
	var src forma.Source
	if asYAML {
		src = forma.YAMLBytes(doc)
	} else {
		src = forma.JSONBytes(doc)
	}
	opt := forma.ParseOpt{MaxDepth: maxDepth, MaxBytes: maxBytes}
	if dupError {
		opt.OnDuplicateKey = forma.DupError
	}
	if _, err := forma.ParseFrom(s, src, opt); err != nil {
		fatalf("%v", err)
	}
	fmt.Println("ok")
}

func typeCmd(args []string) {
	fs := flag.NewFlagSet("type", flag.ExitOnError)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema declaration file (YAML or JSON)")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	fmt.Println(compileSchema(schemaPath).Type())
}

func lintDupsCmd(args []string) {
	fs := flag.NewFlagSet("lint-dups", flag.ExitOnError)
	var inPath string
	var limit int
	fs.StringVar(&inPath, "in", "", "JSON document to scan")
	fs.IntVar(&limit, "limit", 0, "stop after N duplicates, 0 = unlimited")
	_ = fs.Parse(args)
	if inPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	doc, err := os.ReadFile(inPath)
	if err != nil {
		fatalf("reading document: %v", err)
	}
	dups := forma.DetectJSONDuplicateKeysBytes(doc, limit)
	if len(dups) == 0 {
		fmt.Println("ok")
		return
	}
	for _, d := range dups {
		fmt.Println(d.Error())
	}
	os.Exit(1)
}

func compileSchema(path string) forma.Schema[map[string]any] {
	b, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading schema: %v", err)
	}
	s, err := schemafile.Compile(b)
	if err != nil {
		fatalf("%v", err)
	}
	return s
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
