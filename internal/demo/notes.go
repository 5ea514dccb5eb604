package demo

import (
	"os"
	"strings"
	"time"

	"github.com/clistack/clistack/pkg/argparse"
	"github.com/clistack/clistack/pkg/controller"
	"github.com/clistack/clistack/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Note is one stored note.
type Note struct {
	Text    string    `yaml:"text" json:"text"`
	Tag     string    `yaml:"tag,omitempty" json:"tag,omitempty"`
	Created time.Time `yaml:"created" json:"created"`
}

func notesController() *controller.Definition {
	return &controller.Definition{
		Label:       "notes",
		Description: "note-taking commands",
		StackedOn:   "base",
		Arguments: []argparse.Decl{
			{
				Specs: []string{"-t", "--tag"},
				Options: argparse.Options{
					"help": "tag applied to new notes",
					"dest": "tag",
				},
			},
		},
		Commands: []controller.CommandSpec{
			{
				Label: "add",
				Help:  "add a note",
				Func:  notesAdd,
			},
			{
				Label:   "list",
				Help:    "list stored notes",
				Aliases: []string{"ls"},
				Func:    notesList,
			},
			{
				Label:   "run_report",
				Help:    "roll notes up into a quick report",
				Aliases: []string{"rr"},
				Func:    notesReport,
			},
		},
	}
}

func notesAdd(c *controller.Base, args *argparse.Result) error {
	rest := args.Rest()
	if len(rest) == 0 {
		return errors.New(errors.ErrParse,
			"Nothing to add",
			"Usage: stackctl add <text>")
	}

	path := c.Ctx().Config.GetString("notes.file")
	notes, err := loadNotes(path)
	if err != nil {
		return err
	}

	notes = append(notes, Note{
		Text:    strings.Join(rest, " "),
		Tag:     args.String("tag"),
		Created: time.Now().UTC(),
	})

	if err := saveNotes(path, notes); err != nil {
		return err
	}
	c.Ctx().Log.Debug("stored note in %s", path)
	c.Ctx().Printer.Printf("added note %d\n", len(notes))
	return nil
}

func notesList(c *controller.Base, args *argparse.Result) error {
	notes, err := loadNotes(c.Ctx().Config.GetString("notes.file"))
	if err != nil {
		return err
	}
	out, err := outputRenderer(c, args)
	if err != nil {
		return err
	}
	return out(notes)
}

func notesReport(c *controller.Base, args *argparse.Result) error {
	notes, err := loadNotes(c.Ctx().Config.GetString("notes.file"))
	if err != nil {
		return err
	}

	byTag := make(map[string]int)
	for _, n := range notes {
		tag := n.Tag
		if tag == "" {
			tag = "untagged"
		}
		byTag[tag]++
	}

	out, err := outputRenderer(c, args)
	if err != nil {
		return err
	}
	return out(map[string]any{
		"total":  len(notes),
		"by_tag": byTag,
	})
}

func loadNotes(path string) ([]Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot read notes file "+path,
			"Check the notes.file setting and file permissions")
	}
	var notes []Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Notes file "+path+" is not valid YAML",
			"Fix or remove the file")
	}
	return notes, nil
}

func saveNotes(path string, notes []Note) error {
	data, err := yaml.Marshal(notes)
	if err != nil {
		return errors.Wrap(err, "Cannot encode notes")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write notes file "+path,
			"Check the notes.file setting and directory permissions")
	}
	return nil
}
