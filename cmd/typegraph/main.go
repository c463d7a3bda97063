package main

import (
	"flag"
	"fmt"
	"os"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/funcschema"
	"github.com/typegraph/typegraph/jsonschema"
	"github.com/typegraph/typegraph/source/yamlgraph"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "gen":
		genCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "typegraph CLI\n\nUsage:\n  typegraph gen -f types.yaml [-root Name] [-preset default|strict|simple] [-format json|yaml|function] [-o out]")
}

func genCmd(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var file string
	var root string
	var preset string
	var format string
	var out string
	fs.StringVar(&file, "f", "", "YAML type-definition file")
	fs.StringVar(&root, "root", "", "root type name (defaults to the document's root)")
	fs.StringVar(&preset, "preset", "default", "options preset: default, strict or simple")
	fs.StringVar(&format, "format", "json", "output format: json, yaml or function")
	fs.StringVar(&out, "o", "", "output filename (defaults to stdout)")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		fatalf("reading %s: %v", file, err)
	}
	doc, err := yamlgraph.Load(data)
	if err != nil {
		fatalf("loading %s: %v", file, err)
	}
	if root == "" {
		root = doc.RootName()
	}

	var opt typegraph.Options
	switch preset {
	case "default":
		opt = typegraph.DefaultOptions()
	case "strict":
		opt = typegraph.StrictOptions()
	case "simple":
		opt = typegraph.SimpleOptions()
	default:
		fatalf("unknown preset %q", preset)
	}

	g := doc.Graph()
	var rendered []byte
	switch format {
	case "json":
		schema, err := jsonschema.Transform(g, root, opt)
		if err != nil {
			fatalf("transform: %v", err)
		}
		rendered, err = jsonschema.EncodeIndent(schema)
		if err != nil {
			fatalf("encode: %v", err)
		}
	case "yaml":
		schema, err := jsonschema.Transform(g, root, opt)
		if err != nil {
			fatalf("transform: %v", err)
		}
		rendered, err = jsonschema.ToYAML(schema)
		if err != nil {
			fatalf("encode: %v", err)
		}
	case "function":
		tool, err := funcschema.Transform(g, root, "", opt)
		if err != nil {
			fatalf("transform: %v", err)
		}
		rendered, err = funcschema.EncodeIndent(tool)
		if err != nil {
			fatalf("encode: %v", err)
		}
	default:
		fatalf("unknown format %q", format)
	}

	if out == "" {
		fmt.Println(string(rendered))
		return
	}
	if err := os.WriteFile(out, append(rendered, '\n'), 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
