package controller

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/clistack/clistack/pkg/render"
)

// UsageText returns the usage line displayed when --help is passed.
func (c *Base) UsageText() string {
	prog := c.ctx.Prog
	if c.def.Label == BaseLabel {
		return fmt.Sprintf("%s <CMD> -opt1 --opt2=VAL [arg1] [arg2] ...", prog)
	}
	return fmt.Sprintf("%s %s <CMD> -opt1 --opt2=VAL [arg1] [arg2] ...", prog, DashForm(c.def.Label))
}

// HelpText returns the description and command listing displayed when
// --help is passed. Commands are listed alphabetically by dash-form label
// with their aliases and help text; hidden commands are omitted.
func (c *Base) HelpText() string {
	labels := make([]string, 0, len(c.table.Visible))
	byDash := make(map[string]*Entry, len(c.table.Visible))
	for label, e := range c.table.Visible {
		dash := DashForm(label)
		labels = append(labels, dash)
		byDash[dash] = e
	}
	sort.Strings(labels)

	width := render.TerminalWidth(os.Stdout)

	var cmds strings.Builder
	for _, label := range labels {
		e := byDash[label]
		if len(e.Aliases) > 0 {
			fmt.Fprintf(&cmds, "  %s (aliases: %s)\n", label, strings.Join(e.Aliases, ", "))
		} else {
			fmt.Fprintf(&cmds, "  %s\n", label)
		}
		if e.Help != "" {
			fmt.Fprintf(&cmds, "    %s\n\n", wrap(e.Help, width-4))
		} else {
			cmds.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(c.def.Description)
	b.WriteString("\n\ncommands:\n\n")
	b.WriteString(cmds.String())
	return b.String()
}

// wrap folds text to at most width columns, indenting continuation lines to
// match the help listing layout.
func wrap(text string, width int) string {
	if width < 20 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			b.WriteString(line)
			b.WriteString("\n    ")
			line = w
			continue
		}
		line += " " + w
	}
	b.WriteString(line)
	return b.String()
}
