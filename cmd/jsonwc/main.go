package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"gopkg.in/yaml.v3"

	"github.com/chandan-cmd-dev/jsonwc-go/internal/config"
	"github.com/chandan-cmd-dev/jsonwc-go/internal/source"
	"github.com/chandan-cmd-dev/jsonwc-go/jsonwc"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

type options struct {
	mode    string
	numbers jsonwc.NumberMode
	indent  bool
	limit   int64
	schema  *jsonwc.Schema
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsonwc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		mode, cfgPath, schemaPath, numbers string
		indent                             bool
	)
	fs.StringVar(&mode, "mode", "strip", "strip | parse | check | yaml | canon | digest")
	fs.StringVar(&cfgPath, "config", "", "YAML or JSON-with-comments config file")
	fs.StringVar(&schemaPath, "schema", "", "JSON Schema (comments allowed) for -mode check")
	fs.StringVar(&numbers, "numbers", "", "float64 | number | decimal")
	fs.BoolVar(&indent, "indent", false, "pretty-print -mode parse output")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return fatalf(stderr, "config: %v", err)
		}
	}
	if set["numbers"] {
		cfg.Numbers = numbers
	}
	if set["indent"] {
		cfg.Indent = indent
	}
	if set["schema"] {
		cfg.Schema = schemaPath
	}

	opts := options{mode: mode, indent: cfg.Indent, limit: cfg.MaxBytes}
	switch mode {
	case "strip", "parse", "check", "yaml", "canon", "digest":
	default:
		return fatalf(stderr, "invalid -mode %q", mode)
	}
	m, err := jsonwc.ParseNumberMode(cfg.Numbers)
	if err != nil {
		return fatalf(stderr, "%v", err)
	}
	opts.numbers = m
	if cfg.Schema != "" {
		b, err := os.ReadFile(cfg.Schema)
		if err != nil {
			return fatalf(stderr, "read schema: %v", err)
		}
		if opts.schema, err = jsonwc.CompileSchema(cfg.Schema, b); err != nil {
			return fatalf(stderr, "%v", err)
		}
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{source.Stdin}
	}
	names, err := source.Expand(inputs)
	if err != nil {
		return fatalf(stderr, "%v", err)
	}

	ctx := context.Background()
	o := &source.Opener{Stdin: stdin}
	var ye *yaml.Encoder
	if mode == "yaml" {
		ye = yaml.NewEncoder(stdout)
		ye.SetIndent(2)
		defer ye.Close()
	}

	code := exitOK
	for _, name := range names {
		if err := process(ctx, o, name, opts, stdout, ye); err != nil {
			report(stderr, name, err)
			code = exitFailed
			continue
		}
		if mode == "check" {
			fmt.Fprintf(stdout, "ok %s\n", display(name))
		}
	}
	return code
}

func process(ctx context.Context, o *source.Opener, name string, opts options, stdout io.Writer, ye *yaml.Encoder) error {
	data, err := source.ReadAll(ctx, o, name, opts.limit)
	if err != nil {
		return err
	}
	switch opts.mode {
	case "strip":
		// Nothing is written for an input that fails to strip.
		out, err := jsonwc.Strip(data)
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err

	case "check":
		if opts.schema != nil {
			return opts.schema.ValidateDocument(data)
		}
		_, err := jsonwc.Parse(string(data))
		return err

	case "canon":
		c, err := jsonwc.Canonical(data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s\n", c)
		return err

	case "digest":
		sum, err := jsonwc.Fingerprint(data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s  %s\n", sum, display(name))
		return err

	case "yaml":
		v, err := decode(data, opts.numbers)
		if err != nil {
			return err
		}
		return ye.Encode(yamlNode(v))
	}

	// parse
	numbers := opts.numbers
	if numbers == jsonwc.NumberDecimal {
		numbers = jsonwc.NumberJSON
	}
	v, err := decode(data, numbers)
	if err != nil {
		return err
	}
	var js []byte
	if opts.indent {
		js, err = json.MarshalIndent(v, "", "  ")
	} else {
		js, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", js)
	return err
}

func decode(data []byte, m jsonwc.NumberMode) (any, error) {
	var v any
	dec := jsonwc.NewDecoder(bytes.NewReader(data))
	dec.SetNumberMode(m)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// yamlNode builds the document by hand so numbers keep their JSON spelling.
func yamlNode(v any) *yaml.Node {
	switch t := v.(type) {
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, yamlNode(t[k]))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			n.Content = append(n.Content, yamlNode(e))
		}
		return n
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: t.String()}
	case *apd.Decimal:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: t.Text('f')}
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(t, 'g', -1, 64)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func report(w io.Writer, name string, err error) {
	var je *jsonwc.Error
	if errors.As(err, &je) {
		fmt.Fprintf(w, "%s:%d:%d: %v\n", display(name), je.Line, je.Column, err)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", display(name), err)
}

func display(name string) string {
	if name == source.Stdin {
		return "<stdin>"
	}
	return name
}

func fatalf(w io.Writer, f string, a ...any) int {
	fmt.Fprintf(w, "error: "+f+"\n", a...)
	return exitUsage
}
