package app

import (
	"github.com/clistack/clistack/pkg/argparse"
	"github.com/clistack/clistack/pkg/handler"
	"github.com/clistack/clistack/pkg/logger"
	"github.com/clistack/clistack/pkg/render"
	"github.com/spf13/viper"
)

// Context is the application runtime threaded through every controller
// setup and command invocation. Config, Log, Renderer, Printer, and Registry
// are read-only after start-up. Argv shrinks as dispatch consumes command
// tokens, and Args is replaced with a fresh parser when dispatch delegates
// to a standalone controller; nothing else mutates.
type Context struct {
	// Prog is the program name used in usage text.
	Prog string
	// Config is the application configuration store.
	Config *viper.Viper
	// Log receives framework and application diagnostics.
	Log logger.Logger
	// Renderer turns command output data into text.
	Renderer render.Renderer
	// Printer writes styled terminal output.
	Printer *render.Printer
	// Registry resolves controller definitions for merging and routing.
	Registry *handler.Registry
	// Args is the argument parser for the controller currently dispatching.
	Args *argparse.Parser
	// Argv holds the residual command-line tokens.
	Argv []string
}
