package controller

import "github.com/clistack/clistack/pkg/argparse"

// Entry is one command in a built table. Merged entries keep the label of
// the controller that declared them so dispatch can route the invocation
// back to its true owner.
type Entry struct {
	// Owner is the label of the controller that declared the command.
	Owner string
	// Label is the canonical underscore-form command label.
	Label string
	Help  string
	// Aliases are matched against the raw first token.
	Aliases []string
	// Hidden is the command's own hidden flag.
	Hidden bool
	Func   CommandFunc
	// Ref, when non-empty, marks a synthetic pointer entry to a standalone
	// controller: dispatch delegates to that controller instead of calling
	// a command function.
	Ref string
}

// Table is the built, collision-free command table of one controller
// instance: every exposed command, the hidden and visible subsets, and the
// merged argument declarations. Tables are rebuilt on every Setup.
type Table struct {
	Exposed map[string]*Entry
	Hidden  map[string]*Entry
	Visible map[string]*Entry
	// Arguments holds the merged declarations in merge order.
	Arguments []argparse.Decl
	// Epilog is adopted from the first non-stacked controller collected.
	Epilog string

	// labels preserves insertion order so alias validation and help output
	// are deterministic across runs.
	labels []string
}

func newTable() *Table {
	return &Table{
		Exposed: make(map[string]*Entry),
		Hidden:  make(map[string]*Entry),
		Visible: make(map[string]*Entry),
	}
}

// Labels returns the exposed labels in insertion order.
func (t *Table) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// insert registers an entry in the exposed map and sorts it into hidden or
// visible. ownerHidden is the hidden flag of the controller contributing the
// entry: a hidden controller keeps all its commands out of the visible set.
func (t *Table) insert(e *Entry, ownerHidden bool) {
	t.Exposed[e.Label] = e
	t.labels = append(t.labels, e.Label)
	if e.Hidden {
		t.Hidden[e.Label] = e
	} else if !ownerHidden {
		t.Visible[e.Label] = e
	}
}
