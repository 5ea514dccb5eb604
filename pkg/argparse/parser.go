// Package argparse adapts spf13/pflag to the declaration-driven parser
// contract that controllers program against. Controllers hand over an
// ordered list of argument declarations plus description/usage/epilog text;
// the parser turns residual command-line tokens into a Result.
package argparse

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clistack/clistack/pkg/errors"
	flag "github.com/spf13/pflag"
)

// ErrHelp is reported by Parse when the user asked for --help.
// Usage text has already been printed when this is returned.
var ErrHelp = flag.ErrHelp

// Recognized option keys in a declaration's options map.
const (
	OptHelp    = "help"    // help text for the flag or positional
	OptDefault = "default" // default value
	OptDest    = "dest"    // destination name in the Result
	OptAction  = "action"  // one of the Action* constants
)

// Supported action kinds.
const (
	ActionStore      = "store"       // string value (the default)
	ActionStoreTrue  = "store_true"  // boolean toggle
	ActionStoreCount = "store_count" // counter, e.g. -vvv
)

// Options is the options map of a declaration. A nil Options map is a
// structural error; use an empty map when no options are needed.
type Options map[string]any

func (o Options) str(key string) string {
	if v, ok := o[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Decl is one argument declaration: an ordered list of specifiers and an
// options map. Specifiers starting with a dash declare a flag ("-f",
// "--format"); a single bare specifier declares a named positional.
type Decl struct {
	Specs   []string
	Options Options
}

// Validate checks the (sequence, mapping) shape of the declaration.
func (d Decl) Validate() error {
	if len(d.Specs) == 0 || d.Options == nil {
		return errors.New(errors.ErrConfig,
			"Argument declarations must be (specifiers, options) pairs",
			`Declare arguments like {Specs: []string{"-f", "--foo"}, Options: argparse.Options{"help": "foo option"}}`)
	}
	for _, s := range d.Specs {
		if strings.TrimSpace(s) == "" {
			return errors.New(errors.ErrConfig,
				"Argument declaration has an empty specifier",
				"Remove the empty string from the specifier list")
		}
	}
	return nil
}

// positional is a declared positional argument, filled from leftover tokens
// in declaration order after flag parsing.
type positional struct {
	name string
	help string
	def  string
}

type flagInfo struct {
	name   string
	action string
}

// Parser drives a pflag.FlagSet from argument declarations.
type Parser struct {
	Prog        string
	Description string
	Usage       string
	Epilog      string

	fs          *flag.FlagSet
	positionals []positional
	dests       map[string]flagInfo
	out         io.Writer
}

// New creates a parser for the given program name.
func New(prog string) *Parser {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	p := &Parser{
		Prog:  prog,
		fs:    fs,
		dests: make(map[string]flagInfo),
		out:   os.Stderr,
	}
	fs.SetOutput(io.Discard) // errors and usage are rendered by the parser
	fs.Usage = func() { fmt.Fprint(p.out, p.UsageText()) }
	return p
}

// SetOutput redirects usage and error output, mainly for tests.
func (p *Parser) SetOutput(w io.Writer) {
	p.out = w
}

// AddDecl registers one declaration on the underlying flag set.
func (p *Parser) AddDecl(d Decl) error {
	if err := d.Validate(); err != nil {
		return err
	}

	var long, short string
	for _, spec := range d.Specs {
		switch {
		case strings.HasPrefix(spec, "--"):
			long = strings.TrimPrefix(spec, "--")
		case strings.HasPrefix(spec, "-"):
			short = strings.TrimPrefix(spec, "-")
		default:
			// Bare specifier: a named positional.
			if len(d.Specs) != 1 {
				return errors.New(errors.ErrConfig,
					fmt.Sprintf("Positional argument %q cannot carry extra specifiers", spec),
					"Declare one positional per declaration")
			}
			p.positionals = append(p.positionals, positional{
				name: spec,
				help: d.Options.str(OptHelp),
				def:  d.Options.str(OptDefault),
			})
			return nil
		}
	}

	if long == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Flag declaration %v needs a long form", d.Specs),
			`Include a "--name" specifier`)
	}
	if len(short) > 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Short flag -%s must be a single character", short),
			"Use a one-letter short form, or drop it")
	}

	dest := d.Options.str(OptDest)
	if dest == "" {
		dest = strings.ReplaceAll(long, "-", "_")
	}
	if _, exists := p.dests[dest]; exists {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Duplicate argument destination %q", dest),
			"Merged controllers declare overlapping flags; rename one or set a distinct dest")
	}

	help := d.Options.str(OptHelp)
	action := d.Options.str(OptAction)
	if action == "" {
		action = ActionStore
	}

	switch action {
	case ActionStore:
		p.fs.StringP(long, short, d.Options.str(OptDefault), help)
	case ActionStoreTrue:
		def := false
		if v, ok := d.Options[OptDefault].(bool); ok {
			def = v
		}
		p.fs.BoolP(long, short, def, help)
	case ActionStoreCount:
		p.fs.CountP(long, short, help)
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown action %q for flag --%s", action, long),
			"Supported actions: store, store_true, store_count")
	}

	p.dests[dest] = flagInfo{name: long, action: action}
	return nil
}

// Parse consumes the residual tokens. On --help the usage text is printed
// and ErrHelp returned; any other parse failure is a PARSE error.
func (p *Parser) Parse(tokens []string) (*Result, error) {
	if err := p.fs.Parse(tokens); err != nil {
		if err == flag.ErrHelp {
			p.fs.Usage()
			return nil, ErrHelp
		}
		return nil, errors.WrapWithCode(err, errors.ErrParse,
			"Invalid arguments",
			fmt.Sprintf("Run '%s --help' for usage", p.Prog))
	}

	res := &Result{
		flags:       make(map[string]flagInfo, len(p.dests)),
		fs:          p.fs,
		positionals: make(map[string]string, len(p.positionals)),
	}
	for dest, info := range p.dests {
		res.flags[dest] = info
	}

	rest := p.fs.Args()
	for _, pos := range p.positionals {
		if len(rest) > 0 {
			res.positionals[pos.name] = rest[0]
			rest = rest[1:]
		} else {
			res.positionals[pos.name] = pos.def
		}
	}
	res.rest = rest
	return res, nil
}

// Lookup reports whether a flag with the given long name was declared.
func (p *Parser) Lookup(long string) bool {
	return p.fs.Lookup(long) != nil
}

// UsageText renders description, usage line, flag usages, and epilog.
func (p *Parser) UsageText() string {
	var b strings.Builder
	if p.Description != "" {
		b.WriteString(p.Description)
		if !strings.HasSuffix(p.Description, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if p.Usage != "" {
		fmt.Fprintf(&b, "usage: %s\n\n", p.Usage)
	}
	if len(p.positionals) > 0 {
		b.WriteString("arguments:\n")
		for _, pos := range p.positionals {
			fmt.Fprintf(&b, "  %s\n", pos.name)
			if pos.help != "" {
				fmt.Fprintf(&b, "    %s\n", pos.help)
			}
		}
		b.WriteString("\n")
	}
	if usages := p.fs.FlagUsages(); usages != "" {
		b.WriteString("flags:\n")
		b.WriteString(usages)
	}
	if p.Epilog != "" {
		b.WriteString("\n")
		b.WriteString(p.Epilog)
		if !strings.HasSuffix(p.Epilog, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
