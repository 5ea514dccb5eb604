package demo

import (
	"time"

	"github.com/clistack/clistack/pkg/argparse"
	"github.com/clistack/clistack/pkg/controller"
)

// reportsController is a standalone controller: it appears as a single
// 'reports' entry under base, and runs its own dispatch once reached.
func reportsController() *controller.Definition {
	return &controller.Definition{
		Label:       "reports",
		Description: "summaries over stored notes",
		Epilog:      "Reports read the same notes file the base commands write.",
		Arguments: []argparse.Decl{
			{
				Specs: []string{"-f", "--format"},
				Options: argparse.Options{
					"help": "output format (yaml or json)",
					"dest": "format",
				},
			},
		},
		Commands: []controller.CommandSpec{
			{
				Label:  "default",
				Help:   "default command",
				Hidden: true,
				Func: func(c *controller.Base, args *argparse.Result) error {
					c.Ctx().Printer.Printf("%s", c.HelpText())
					return nil
				},
			},
			{
				Label:   "daily",
				Help:    "notes created in the last 24 hours",
				Aliases: []string{"day"},
				Func:    reportsDaily,
			},
			{
				Label: "summary",
				Help:  "totals for the whole notes file",
				Func:  reportsSummary,
			},
		},
	}
}

func reportsDaily(c *controller.Base, args *argparse.Result) error {
	notes, err := loadNotes(c.Ctx().Config.GetString("notes.file"))
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	var recent []Note
	for _, n := range notes {
		if n.Created.After(cutoff) {
			recent = append(recent, n)
		}
	}

	out, err := outputRenderer(c, args)
	if err != nil {
		return err
	}
	return out(map[string]any{
		"since": cutoff,
		"count": len(recent),
		"notes": recent,
	})
}

func reportsSummary(c *controller.Base, args *argparse.Result) error {
	notes, err := loadNotes(c.Ctx().Config.GetString("notes.file"))
	if err != nil {
		return err
	}

	var oldest, newest time.Time
	for i, n := range notes {
		if i == 0 || n.Created.Before(oldest) {
			oldest = n.Created
		}
		if n.Created.After(newest) {
			newest = n.Created
		}
	}

	out, err := outputRenderer(c, args)
	if err != nil {
		return err
	}
	summary := map[string]any{"total": len(notes)}
	if len(notes) > 0 {
		summary["oldest"] = oldest
		summary["newest"] = newest
	}
	return out(summary)
}
