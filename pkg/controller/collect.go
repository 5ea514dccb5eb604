package controller

import (
	"fmt"
	"strings"

	"github.com/clistack/clistack/pkg/errors"
	"github.com/clistack/clistack/pkg/handler"
	"github.com/clistack/clistack/pkg/logger"
)

// collector builds command tables by walking the registry. The visiting
// stack guards against stacking cycles, which would otherwise recurse
// without bound.
type collector struct {
	reg      *handler.Registry
	log      logger.Logger
	visiting []string
}

// buildTable produces the complete, collision-checked command table for one
// controller definition.
func buildTable(reg *handler.Registry, log logger.Logger, def *Definition) (*Table, error) {
	if log == nil {
		log = logger.Default()
	}
	c := &collector{reg: reg, log: log}
	table, err := c.collect(def)
	if err != nil {
		return nil, err
	}
	if err := c.checkAliases(table); err != nil {
		return nil, err
	}
	return table, nil
}

// collect runs the self pass and the registry pass for def, recursing into
// controllers stacked onto it.
func (c *collector) collect(def *Definition) (*Table, error) {
	for _, label := range c.visiting {
		if label == def.Label {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Stacking cycle detected: %s", strings.Join(append(c.visiting, def.Label), " -> ")),
				"Break the cycle by removing one stacked_on reference")
		}
	}
	c.visiting = append(c.visiting, def.Label)
	defer func() { c.visiting = c.visiting[:len(c.visiting)-1] }()

	c.log.Debug("collecting commands and arguments from '%s' controller", def.Label)

	t := newTable()
	if err := c.collectFromSelf(t, def); err != nil {
		return nil, err
	}
	if err := c.collectFromControllers(t, def); err != nil {
		return nil, err
	}
	return t, nil
}

// collectFromSelf registers the controller's own commands and arguments.
func (c *collector) collectFromSelf(t *Table, def *Definition) error {
	for i := range def.Commands {
		spec := &def.Commands[i]
		label := Normalize(spec.Label)
		if label == Normalize(def.Label) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Controller command %q matches controller label", spec.Label),
				"Use 'default' instead")
		}
		if _, exists := t.Exposed[label]; exists {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Controller %q declares command %q twice", def.Label, spec.Label),
				"Command labels must be unique within a controller")
		}
		t.insert(&Entry{
			Owner:   def.Label,
			Label:   label,
			Help:    spec.Help,
			Aliases: spec.Aliases,
			Hidden:  spec.Hidden,
			Func:    spec.Func,
		}, def.Hidden)
	}

	t.Arguments = append(t.Arguments, def.Arguments...)

	// epilog only good for non-stacked controllers
	if def.StackedOn == "" {
		t.Epilog = def.Epilog
	}
	return nil
}

// collectFromControllers walks every other registered controller in
// registration order: standalone controllers become one pointer entry under
// base, stacked children are collected recursively and spliced in.
func (c *collector) collectFromControllers(t *Table, def *Definition) error {
	for _, ht := range c.reg.List(Category) {
		ct, ok := ht.(Type)
		if !ok {
			continue
		}
		other := ct.Def
		if other.Label == def.Label {
			continue
		}

		if other.StackedOn == "" {
			// only show non-stacked controllers under base
			if def.Label == BaseLabel {
				if err := c.collectFromStandalone(t, other); err != nil {
					return err
				}
			}
		} else if other.StackedOn == def.Label {
			if err := c.collectFromStacked(t, other); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectFromStandalone adds the synthetic pointer entry for a standalone
// controller. The entry does not splice the controller's own commands or
// arguments; dispatch delegates to the controller itself.
func (c *collector) collectFromStandalone(t *Table, other *Definition) error {
	c.log.Debug("exposing '%s' controller", other.Label)

	label := Normalize(other.Label)
	if existing, exists := t.Exposed[label]; exists {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Controller %q collides with command %q from controller %q", other.Label, label, existing.Owner),
			"Rename the command or the controller")
	}
	t.insert(&Entry{
		Owner:  other.Label,
		Label:  label,
		Help:   other.Description,
		Hidden: other.Hidden,
		Ref:    other.Label,
	}, false)
	return nil
}

// collectFromStacked collects the child controller's full table and splices
// its commands and arguments into ours.
func (c *collector) collectFromStacked(t *Table, child *Definition) error {
	sub, err := c.collect(child)
	if err != nil {
		return err
	}

	// add stacked arguments into ours
	t.Arguments = append(t.Arguments, sub.Arguments...)

	for _, label := range sub.Labels() {
		e := sub.Exposed[label]
		if existing, exists := t.Exposed[label]; exists {
			if label == DefaultCommand {
				c.log.Debug("ignoring duplicate command '%s' found in '%s' controller", label, child.Label)
				continue
			}
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Duplicate command %q declared by both %q and %q controllers", label, existing.Owner, e.Owner),
				"Rename the command in one of the controllers")
		}
		t.insert(e, child.Hidden)
	}
	return nil
}

// checkAliases runs after all merging: no alias may equal any label or any
// other alias in the table.
func (c *collector) checkAliases(t *Table) error {
	seen := make(map[string]*Entry)
	for _, label := range t.Labels() {
		e := t.Exposed[label]
		for _, alias := range e.Aliases {
			if hit, exists := t.Exposed[Normalize(alias)]; exists {
				return errors.New(errors.ErrConfig,
					fmt.Sprintf("Alias %q from the %q controller collides with the %q controller", alias, e.Owner, hit.Owner),
					"Rename the alias")
			}
			if prev, exists := seen[alias]; exists {
				return errors.New(errors.ErrConfig,
					fmt.Sprintf("Alias %q declared by both %q and %q controllers", alias, prev.Owner, e.Owner),
					"Rename one of the aliases")
			}
			seen[alias] = e
		}
	}
	return nil
}
