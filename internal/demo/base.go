// Package demo assembles the stackctl demo application: a base controller,
// a notes controller stacked onto it, and a standalone reports controller.
package demo

import (
	"runtime"

	"github.com/clistack/clistack/pkg/argparse"
	"github.com/clistack/clistack/pkg/controller"
	"github.com/clistack/clistack/pkg/handler"
	"github.com/clistack/clistack/pkg/render"
)

// ConfigDefaults are the configuration defaults for stackctl.
var ConfigDefaults = map[string]any{
	"notes.file":    ".stackctl-notes.yaml",
	"output.format": "yaml",
}

// RegisterAll registers every stackctl controller into reg.
func RegisterAll(reg *handler.Registry, version string) error {
	controller.InstallValidator(reg)
	for _, def := range []*controller.Definition{
		baseController(version),
		notesController(),
		reportsController(),
	} {
		if err := controller.Register(reg, def); err != nil {
			return err
		}
	}
	return nil
}

func baseController(version string) *controller.Definition {
	return &controller.Definition{
		Label:       "base",
		Description: "stackctl keeps project notes and rolls them up into reports",
		Epilog:      "Run 'stackctl <command> --help' for command details.",
		Arguments: []argparse.Decl{
			{
				Specs: []string{"-f", "--format"},
				Options: argparse.Options{
					"help":    "output format (yaml or json)",
					"default": "",
					"dest":    "format",
				},
			},
			{
				Specs: []string{"-v", "--verbose"},
				Options: argparse.Options{
					"help":   "increase log verbosity",
					"action": "store_count",
					"dest":   "verbose",
				},
			},
		},
		Commands: []controller.CommandSpec{
			{
				Label:  "default",
				Help:   "default command",
				Hidden: true,
				Func: func(c *controller.Base, args *argparse.Result) error {
					c.Ctx().Printer.Header(c.Ctx().Prog)
					c.Ctx().Printer.Printf("%s", c.HelpText())
					return nil
				},
			},
			{
				Label: "version",
				Help:  "print version information",
				Func: func(c *controller.Base, args *argparse.Result) error {
					c.Ctx().Printer.Printf("stackctl %s\n", version)
					c.Ctx().Printer.Printf("go: %s\n", runtime.Version())
					c.Ctx().Printer.Printf("os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
					return nil
				},
			},
		},
	}
}

// outputRenderer picks the renderer for a command: the --format flag wins,
// then the configured default, then the context renderer.
func outputRenderer(c *controller.Base, args *argparse.Result) (func(any) error, error) {
	format := args.String("format")
	if format == "" {
		format = c.Ctx().Config.GetString("output.format")
	}

	r := c.Ctx().Renderer
	if format != "" {
		var err error
		r, err = render.New(format)
		if err != nil {
			return nil, err
		}
	}

	printer := c.Ctx().Printer
	return func(data any) error {
		out, err := r.Render(data)
		if err != nil {
			return err
		}
		printer.Printf("%s", out)
		return nil
	}, nil
}
