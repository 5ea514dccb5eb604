// Package app ties the framework together: it owns the runtime context
// (config, logger, renderer, parser) and drives the base controller's
// setup and dispatch for one invocation.
package app

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/clistack/clistack/pkg/argparse"
	"github.com/clistack/clistack/pkg/errors"
	"github.com/clistack/clistack/pkg/handler"
	"github.com/clistack/clistack/pkg/logger"
	"github.com/clistack/clistack/pkg/render"
	"github.com/spf13/viper"
)

// Controller is the public contract every controller implements.
type Controller interface {
	Setup(ctx *Context) error
	Dispatch() error
}

// Factory is implemented by registry types that can produce a fresh
// controller instance per dispatch.
type Factory interface {
	NewController() Controller
}

// App is a command-line application assembled from registered controllers.
type App struct {
	Name         string
	Version      string
	Registry     *handler.Registry
	Config       *viper.Viper
	Log          logger.Logger
	Renderer     render.Renderer
	Printer      *render.Printer
	ErrOut       *render.Printer
	BaseCategory string // registry category holding controllers
	BaseLabel    string // label of the root controller
}

// NewApp creates an application with the default registry, renderer, and
// logger. Callers override fields before Run as needed.
func NewApp(name string) *App {
	return &App{
		Name:         name,
		Version:      "dev",
		Registry:     handler.Default(),
		Config:       viper.New(),
		Log:          logger.NewEnvLogger("[" + name + "]"),
		Renderer:     render.YAML{},
		Printer:      render.NewPrinter(os.Stdout),
		ErrOut:       render.NewPrinter(os.Stderr),
		BaseCategory: "controller",
		BaseLabel:    "base",
	}
}

// Run freezes the registry, resolves the base controller, and dispatches
// argv through it. Fatal errors propagate unmodified.
func (a *App) Run(argv []string) error {
	a.Registry.Freeze()

	t, err := a.Registry.Get(a.BaseCategory, a.BaseLabel)
	if err != nil {
		return err
	}
	factory, ok := t.(Factory)
	if !ok {
		return errors.New(errors.ErrInterface,
			fmt.Sprintf("Registered %q controller cannot produce instances", a.BaseLabel),
			"Register controllers through the controller package")
	}

	ctx := &Context{
		Prog:     a.Name,
		Config:   a.Config,
		Log:      a.Log,
		Renderer: a.Renderer,
		Printer:  a.Printer,
		Registry: a.Registry,
		Args:     argparse.New(a.Name),
		Argv:     argv,
	}

	c := factory.NewController()
	if err := c.Setup(ctx); err != nil {
		return err
	}
	return c.Dispatch()
}

// Main runs the application and converts the outcome to a process exit
// code, printing fatal errors on the way out.
func (a *App) Main(argv []string) int {
	err := a.Run(argv)
	if err == nil {
		return 0
	}
	if stderrors.Is(err, argparse.ErrHelp) {
		return 0
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}
	a.ErrOut.PrintError(err)
	return 1
}
