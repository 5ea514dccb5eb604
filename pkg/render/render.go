// Package render provides the output side of the application context: data
// renderers (YAML, JSON) that command functions use to produce output, and a
// styled printer for errors and diagnostics.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/clistack/clistack/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Renderer turns a data value into output text.
type Renderer interface {
	Render(data any) (string, error)
}

// YAML renders data as YAML.
type YAML struct{}

// Render implements Renderer.
func (YAML) Render(data any) (string, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return "", errors.Wrap(err, "Cannot render output as YAML")
	}
	return string(out), nil
}

// JSON renders data as JSON, optionally indented.
type JSON struct {
	Indent bool
}

// Render implements Renderer.
func (j JSON) Render(data any) (string, error) {
	var (
		out []byte
		err error
	)
	if j.Indent {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return "", errors.Wrap(err, "Cannot render output as JSON")
	}
	return string(out) + "\n", nil
}

// New returns the renderer for a format name.
func New(format string) (Renderer, error) {
	switch format {
	case "yaml", "":
		return YAML{}, nil
	case "json":
		return JSON{Indent: true}, nil
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output format %q", format),
			"Supported formats: yaml, json")
	}
}
