package controller

import (
	"fmt"
	"slices"
	"strings"

	"github.com/clistack/clistack/pkg/argparse"
	"github.com/clistack/clistack/pkg/errors"
)

// Dispatch resolves a command from the residual argv, parses the remaining
// tokens, and invokes exactly one command function, possibly on a freshly
// constructed instance of the controller that owns the command.
func (c *Base) Dispatch() error {
	if c.table == nil {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Controller %q dispatched before Setup", c.def.Label),
			"Call Setup with the application context first")
	}

	c.resolveCommand()

	entry := c.table.Exposed[c.command]

	// Pointer entries delegate the whole residual argv to the standalone
	// controller's own dispatch; its parser handles the remaining tokens.
	if entry != nil && entry.Ref != "" {
		return c.delegateToStandalone(entry)
	}

	args, err := c.parseArgs()
	if err != nil {
		return err
	}

	if entry == nil {
		c.ctx.Log.Debug("no command to dispatch")
		return nil
	}

	c.ctx.Log.Debug("dispatching command: %s.%s", entry.Owner, entry.Label)

	if entry.Owner == c.def.Label {
		return entry.Func(c, args)
	}
	return c.delegateToOwner(entry, args)
}

// resolveCommand chops a command token off the front of argv if it matches
// an exposed label or alias. An unmatched token stays in argv for the
// argument parser.
func (c *Base) resolveCommand() {
	argv := c.ctx.Argv
	if len(argv) == 0 || strings.HasPrefix(argv[0], "-") {
		return
	}

	// translate dashes back to underscores
	cmd := Normalize(argv[0])
	if _, ok := c.table.Exposed[cmd]; ok {
		c.command = cmd
		c.ctx.Argv = argv[1:]
		return
	}
	for _, label := range c.table.Labels() {
		e := c.table.Exposed[label]
		if slices.Contains(e.Aliases, argv[0]) {
			c.command = e.Label
			c.ctx.Argv = argv[1:]
			return
		}
	}
}

// parseArgs configures the shared parser with this controller's help text
// and merged declarations, then delegates token parsing to it.
func (c *Base) parseArgs() (*argparse.Result, error) {
	p := c.ctx.Args
	if p == nil {
		p = argparse.New(c.ctx.Prog)
		c.ctx.Args = p
	}
	p.Description = c.HelpText()
	p.Usage = c.UsageText()
	if c.table.Epilog != "" {
		p.Epilog = c.table.Epilog
	}
	for _, d := range c.table.Arguments {
		if err := p.AddDecl(d); err != nil {
			return nil, err
		}
	}
	return p.Parse(c.ctx.Argv)
}

// delegateToStandalone routes a pointer entry to the standalone controller
// it references: fresh instance, same application context, its own parser.
func (c *Base) delegateToStandalone(entry *Entry) error {
	t, err := c.ctx.Registry.Get(Category, entry.Ref)
	if err != nil {
		return err
	}
	ct, ok := t.(Type)
	if !ok {
		return errors.New(errors.ErrInterface,
			fmt.Sprintf("Registered %q controller cannot produce instances", entry.Ref),
			"Register controllers through the controller package")
	}

	prog := c.ctx.Prog
	if c.ctx.Args != nil {
		prog = c.ctx.Args.Prog
	}
	c.ctx.Args = argparse.New(prog + " " + DashForm(entry.Ref))

	inst := New(ct.Def)
	if err := inst.Setup(c.ctx); err != nil {
		return err
	}
	return inst.Dispatch()
}

// delegateToOwner invokes a merged command on a fresh instance of the
// controller that declared it.
func (c *Base) delegateToOwner(entry *Entry, args *argparse.Result) error {
	t, err := c.ctx.Registry.Get(Category, entry.Owner)
	if err != nil {
		return err
	}
	ct, ok := t.(Type)
	if !ok {
		return errors.New(errors.ErrInterface,
			fmt.Sprintf("Registered %q controller cannot produce instances", entry.Owner),
			"Register controllers through the controller package")
	}

	inst := New(ct.Def)
	if err := inst.Setup(c.ctx); err != nil {
		return err
	}
	return entry.Func(inst, args)
}
