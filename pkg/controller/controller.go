// Package controller implements the hierarchical command-dispatch engine.
// Controllers are registered as plain data definitions; at dispatch time a
// fresh instance merges its own commands with those of controllers stacked
// onto it, resolves a command from the residual argv, and routes the call to
// the controller instance that owns it.
package controller

import (
	"fmt"
	"strings"

	"github.com/clistack/clistack/pkg/app"
	"github.com/clistack/clistack/pkg/argparse"
	"github.com/clistack/clistack/pkg/errors"
	"github.com/clistack/clistack/pkg/handler"
	"github.com/clistack/clistack/pkg/logger"
)

const (
	// Category is the handler registry category for controllers.
	Category = "controller"
	// BaseLabel names the root controller of an application.
	BaseLabel = "base"
	// DefaultCommand is the command invoked when no token matches.
	DefaultCommand = "default"
)

// CommandFunc is an invokable command. It receives the controller instance
// the dispatch resolved to and the parsed arguments.
type CommandFunc func(c *Base, args *argparse.Result) error

// CommandSpec declares one command contributed by a controller. Labels are
// stored in underscore form and rendered with dashes on the CLI; the two
// forms are interchangeable.
type CommandSpec struct {
	Label   string
	Help    string
	Aliases []string
	Hidden  bool
	Func    CommandFunc
}

// Definition is the static description of a controller: its identity, its
// stacking relationship, its commands, and its argument declarations.
// Definitions are registered once at start-up and never mutated.
type Definition struct {
	// Label uniquely identifies the controller. For standalone controllers
	// it is also the sub-command token under base.
	Label string
	// Description is shown at the top of --help.
	Description string
	// StackedOn names the parent controller whose table this controller's
	// commands and arguments merge into. Empty means top-level.
	StackedOn string
	// Hidden suppresses the controller's commands from help listings.
	Hidden bool
	// Epilog is printed at the bottom of --help. Only meaningful when the
	// controller is not stacked.
	Epilog string
	// Arguments are the controller's argument declarations, in order.
	Arguments []argparse.Decl
	// Commands are the controller's declared commands.
	Commands []CommandSpec
}

// Type adapts a Definition for the handler registry.
type Type struct {
	Def *Definition
}

// Category implements handler.Type.
func (t Type) Category() string { return Category }

// Label implements handler.Type.
func (t Type) Label() string { return t.Def.Label }

// NewController implements app.Factory: each dispatch gets a fresh instance.
func (t Type) NewController() app.Controller { return New(t.Def) }

// Register validates a definition and adds it to the registry.
func Register(reg *handler.Registry, def *Definition) error {
	return reg.Register(Type{Def: def})
}

// InstallValidator wires the controller contract check into a registry so
// malformed definitions fail at registration, before any dispatch.
func InstallValidator(reg *handler.Registry) {
	reg.SetValidator(Category, ValidateType)
}

// ValidateType is the registration-time contract check for controllers.
func ValidateType(t handler.Type) error {
	ct, ok := t.(Type)
	if !ok || ct.Def == nil {
		return errors.New(errors.ErrInterface,
			fmt.Sprintf("Handler %q is not a controller definition", t.Label()),
			"Register controllers via controller.Register")
	}
	def := ct.Def
	if def.Label == "" {
		return errors.New(errors.ErrInterface,
			"Controller definitions must carry a label",
			"Set Definition.Label")
	}
	for _, cmd := range def.Commands {
		if cmd.Label == "" {
			return errors.New(errors.ErrInterface,
				fmt.Sprintf("Controller %q declares a command without a label", def.Label),
				"Set CommandSpec.Label on every command")
		}
		if cmd.Func == nil {
			return errors.New(errors.ErrInterface,
				fmt.Sprintf("Command %q on controller %q has no function", cmd.Label, def.Label),
				"Set CommandSpec.Func on every command")
		}
	}
	for _, d := range def.Arguments {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Normalize translates a CLI token into the internal underscore form.
func Normalize(label string) string {
	return strings.ReplaceAll(label, "-", "_")
}

// DashForm translates an internal label into its CLI dash form.
func DashForm(label string) string {
	return strings.ReplaceAll(label, "_", "-")
}

// Base is a controller instance. Instances are created fresh per dispatch
// context: Setup binds the instance to the shared application runtime and
// builds its command table, Dispatch consumes residual arguments and invokes
// exactly one command, then the instance is discarded.
type Base struct {
	def     *Definition
	ctx     *app.Context
	table   *Table
	command string
}

// New creates an instance of a controller definition.
func New(def *Definition) *Base {
	return &Base{def: def, command: DefaultCommand}
}

// Definition returns the instance's static definition.
func (c *Base) Definition() *Definition { return c.def }

// Ctx returns the application context bound by Setup.
func (c *Base) Ctx() *app.Context { return c.ctx }

// Table returns the command table built by Setup.
func (c *Base) Table() *Table { return c.table }

// Setup binds the instance to the application runtime and (re)builds its
// command table by walking the registry.
func (c *Base) Setup(ctx *app.Context) error {
	if ctx.Log == nil {
		ctx.Log = logger.Default()
	}
	c.ctx = ctx
	c.command = DefaultCommand

	table, err := buildTable(ctx.Registry, ctx.Log, c.def)
	if err != nil {
		return err
	}
	c.table = table
	return nil
}
