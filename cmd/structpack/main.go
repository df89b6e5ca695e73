// structpack - structural data packing CLI
//
// Usage:
//
//	structpack encode [--format=binary|json|debug]       Encode the example entity
//	structpack decode [--format=binary|json] [file]      Decode a file back to an entity, print as debug text
//	structpack schema                                    Print the example entity's schema as debug text
//	structpack version                                   Print version info
//
// If no file is given to decode, it reads from stdin. encode always writes
// to stdout.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/varnix/structpack/binary"
	"github.com/varnix/structpack/debugpack"
	"github.com/varnix/structpack/examples/entity"
	"github.com/varnix/structpack/jsonbridge"
	"github.com/varnix/structpack/objpack"
	"github.com/varnix/structpack/schema"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	format := "binary"
	fileArg := ""
	for _, arg := range os.Args[2:] {
		switch {
		case strings.HasPrefix(arg, "--format="):
			format = strings.TrimPrefix(arg, "--format=")
		case !strings.HasPrefix(arg, "-") && arg != "-":
			fileArg = arg
		}
	}

	switch cmd {
	case "encode":
		cmdEncode(format)
	case "decode":
		var input io.Reader = os.Stdin
		if fileArg != "" {
			f, err := os.Open(fileArg)
			if err != nil {
				fatal("open file: %v", err)
			}
			defer f.Close()
			input = f
		}
		cmdDecode(format, input)
	case "schema":
		cmdSchema()
	case "version", "-v", "--version":
		fmt.Printf("structpack %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `structpack - structural data packing CLI

Usage:
  structpack encode [--format=binary|json|debug]   Encode the example entity
  structpack decode [--format=binary|json] [file]  Decode a file, print as debug text
  structpack schema                                Print the example entity's schema
  structpack version                               Print version info

If no file is given to decode, it reads from stdin.

Examples:
  structpack encode --format=debug
  structpack encode --format=binary > entity.bin
  structpack decode --format=binary entity.bin
  structpack encode --format=json | structpack decode --format=json
`)
}

func cmdEncode(format string) {
	e := entity.Example()

	switch format {
	case "binary":
		data, err := binary.WriteValue(&e)
		if err != nil {
			fatal("encode: %v", err)
		}
		os.Stdout.Write(data)

	case "json":
		obj, err := objpack.WriteValue(&e)
		if err != nil {
			fatal("encode: %v", err)
		}
		data, err := jsonbridge.ToJSON(obj.AsConst())
		if err != nil {
			fatal("encode: %v", err)
		}
		fmt.Println(string(data))

	case "debug":
		text, err := debugpack.Render(&e)
		if err != nil {
			fatal("encode: %v", err)
		}
		fmt.Println(text)

	default:
		fatal("unknown format %q (want binary, json, or debug)", format)
	}
}

func cmdDecode(format string, r io.Reader) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}

	var out entity.Entity
	switch format {
	case "binary":
		if err := binary.ReadValue(data, &out); err != nil {
			fatal("decode: %v", err)
		}

	case "json":
		obj, err := jsonbridge.FromJSON(data)
		if err != nil {
			fatal("decode: %v", err)
		}
		if err := objpack.ReadValue(obj.AsConst(), &out); err != nil {
			fatal("decode: %v", err)
		}

	default:
		fatal("unknown format %q (want binary or json)", format)
	}

	text, err := debugpack.Render(&out)
	if err != nil {
		fatal("render: %v", err)
	}
	fmt.Println(text)
}

func cmdSchema() {
	e := entity.Example()
	s := schema.SchemaOf(&e)
	text, err := debugpack.Render(&s)
	if err != nil {
		fatal("render schema: %v", err)
	}
	fmt.Println(text)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "structpack: "+format+"\n", args...)
	os.Exit(1)
}
