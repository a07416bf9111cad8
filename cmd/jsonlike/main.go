package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gookit/color"
	"github.com/karagenc/jsonlike"
	"github.com/karagenc/jsonlike/httpfmt"
	"github.com/karagenc/jsonlike/serializer"
	"github.com/karagenc/jsonlike/serializer/fast"
	"github.com/karagenc/jsonlike/serializer/gojson"
	"github.com/karagenc/jsonlike/serializer/jsoniter"
	"github.com/karagenc/jsonlike/serializer/stdjson"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("jsonlike", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: jsonlike [flags] [file]")
		flags.PrintDefaults()
	}

	pretty := flags.BoolP("pretty", "p", false, "Indent the output")
	dates := flags.BoolP("dates", "d", false, "Rewrite recognized dates into the canonical format")
	backend := flags.StringP("backend", "b", "fast", "JSON library: std, sonic, go-json, jsoniter or fast")
	serve := flags.StringP("serve", "s", "", "Serve the formatter over HTTP on this address instead")
	verbose := flags.BoolP("verbose", "v", false, "Print debug output")

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	trees, err := newBackend(*backend)
	if err != nil {
		printError(stderr, err)
		return 2
	}

	config := &jsonlike.MapperConfig{Trees: trees}
	if *verbose {
		if isTerminal(stderr) {
			config.Debugger = jsonlike.NewPrintDebugger(stderr)
		} else {
			config.Debugger = jsonlike.NewWriterDebugger(stderr)
		}
	}
	m := jsonlike.NewMapper(config)

	if *serve != "" {
		h, err := httpfmt.New(m, &httpfmt.Config{Debugger: config.Debugger})
		if err != nil {
			printError(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "Listening on %s\n", *serve)
		if err := http.ListenAndServe(*serve, h); err != nil {
			printError(stderr, err)
			return 1
		}
		return 0
	}

	var in io.Reader = stdin
	switch flags.NArg() {
	case 0:
	case 1:
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			printError(stderr, err)
			return 1
		}
		defer f.Close()
		in = f
	default:
		flags.Usage()
		return 2
	}

	data, err := io.ReadAll(in)
	if err != nil {
		printError(stderr, err)
		return 1
	}
	out, err := httpfmt.Format(m, data, httpfmt.Options{Pretty: *pretty, Dates: *dates})
	if err != nil {
		printError(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func newBackend(name string) (serializer.JSONSerializer, error) {
	switch name {
	case "std":
		return stdjson.New(), nil
	case "go-json":
		return gojson.New(nil, nil), nil
	case "jsoniter":
		return jsoniter.New(jsoniter.DefaultConfig()), nil
	case "fast":
		return fast.New(), nil
	case "sonic":
		if fast.Type() != fast.SerializerTypeSonic {
			return nil, fmt.Errorf("sonic is not available on this platform")
		}
		return fast.New(), nil
	}
	return nil, fmt.Errorf("unknown backend: %s", name)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Errors are red when stderr is a terminal.
func printError(w io.Writer, err error) {
	if isTerminal(w) {
		fmt.Fprintln(w, color.Red.Sprintf("Error: %s", err))
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err)
}
