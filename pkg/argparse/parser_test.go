package argparse

import (
	"io"
	"testing"

	"github.com/clistack/clistack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclValidate(t *testing.T) {
	tests := []struct {
		name    string
		decl    Decl
		wantErr bool
	}{
		{
			name: "valid flag declaration",
			decl: Decl{Specs: []string{"-f", "--foo"}, Options: Options{"help": "foo option"}},
		},
		{
			name: "valid positional declaration",
			decl: Decl{Specs: []string{"target"}, Options: Options{}},
		},
		{
			name:    "empty specifier list",
			decl:    Decl{Specs: nil, Options: Options{}},
			wantErr: true,
		},
		{
			name:    "nil options map",
			decl:    Decl{Specs: []string{"--foo"}, Options: nil},
			wantErr: true,
		},
		{
			name:    "blank specifier",
			decl:    Decl{Specs: []string{" "}, Options: Options{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decl.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseStoreFlag(t *testing.T) {
	p := New("stackctl")
	require.NoError(t, p.AddDecl(Decl{
		Specs:   []string{"-f", "--format"},
		Options: Options{"help": "output format", "default": "yaml", "dest": "format"},
	}))

	res, err := p.Parse([]string{"--format", "json"})
	require.NoError(t, err)
	assert.Equal(t, "json", res.String("format"))
	assert.True(t, res.Changed("format"))
}

func TestParseDefaultValue(t *testing.T) {
	p := New("stackctl")
	require.NoError(t, p.AddDecl(Decl{
		Specs:   []string{"--format"},
		Options: Options{"default": "yaml"},
	}))

	res, err := p.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "yaml", res.String("format"))
	assert.False(t, res.Changed("format"))
}

func TestParseShortFlag(t *testing.T) {
	p := New("stackctl")
	require.NoError(t, p.AddDecl(Decl{
		Specs:   []string{"-t", "--tag"},
		Options: Options{"dest": "tag"},
	}))

	res, err := p.Parse([]string{"-t", "work"})
	require.NoError(t, err)
	assert.Equal(t, "work", res.String("tag"))
}

func TestParseStoreTrue(t *testing.T) {
	p := New("stackctl")
	require.NoError(t, p.AddDecl(Decl{
		Specs:   []string{"--force"},
		Options: Options{"action": ActionStoreTrue},
	}))

	res, err := p.Parse([]string{"--force"})
	require.NoError(t, err)
	assert.True(t, res.Bool("force"))
}

func TestParseStoreCount(t *testing.T) {
	p := New("stackctl")
	require.NoError(t, p.AddDecl(Decl{
		Specs:   []string{"-v", "--verbose"},
		Options: Options{"action": ActionStoreCount, "dest": "verbose"},
	}))

	res, err := p.Parse([]string{"-vvv"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count("verbose"))
}

func TestParsePositionals(t *testing.T) {
	p := New("stackctl")
	require.NoError(t, p.AddDecl(Decl{Specs: []string{"source"}, Options: Options{}}))
	require.NoError(t, p.AddDecl(Decl{Specs: []string{"dest"}, Options: Options{"default": "out"}}))

	res, err := p.Parse([]string{"in.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "in.yaml", res.Positional("source"))
	assert.Equal(t, "out", res.Positional("dest"), "missing positional falls back to default")
	assert.Empty(t, res.Rest())
}

func TestParseRestTokens(t *testing.T) {
	p := New("stackctl")
	require.NoError(t, p.AddDecl(Decl{
		Specs:   []string{"--tag"},
		Options: Options{},
	}))

	res, err := p.Parse([]string{"remember", "the", "milk", "--tag", "chores"})
	require.NoError(t, err)
	assert.Equal(t, "chores", res.String("tag"))
	assert.Equal(t, []string{"remember", "the", "milk"}, res.Rest())
}

func TestParseUnknownFlagIsParseError(t *testing.T) {
	p := New("stackctl")
	p.SetOutput(io.Discard)

	_, err := p.Parse([]string{"--bogus"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrParse))
}

func TestParseHelp(t *testing.T) {
	p := New("stackctl")
	p.SetOutput(io.Discard)
	p.Description = "demo app"
	p.Usage = "stackctl <CMD>"

	_, err := p.Parse([]string{"--help"})
	assert.ErrorIs(t, err, ErrHelp)
}

func TestAddDeclRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		decl Decl
	}{
		{
			name: "positional with extra specifiers",
			decl: Decl{Specs: []string{"target", "--target"}, Options: Options{}},
		},
		{
			name: "short flag without long form",
			decl: Decl{Specs: []string{"-f"}, Options: Options{}},
		},
		{
			name: "multi-character short form",
			decl: Decl{Specs: []string{"-foo", "--foo"}, Options: Options{}},
		},
		{
			name: "unknown action",
			decl: Decl{Specs: []string{"--foo"}, Options: Options{"action": "append"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("stackctl").AddDecl(tt.decl)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestAddDeclRejectsDuplicateDest(t *testing.T) {
	p := New("stackctl")
	require.NoError(t, p.AddDecl(Decl{Specs: []string{"--format"}, Options: Options{}}))

	err := p.AddDecl(Decl{Specs: []string{"--fmt"}, Options: Options{"dest": "format"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestUsageText(t *testing.T) {
	p := New("stackctl")
	p.Description = "stackctl keeps notes"
	p.Usage = "stackctl <CMD> [flags]"
	p.Epilog = "See the manual for more."
	require.NoError(t, p.AddDecl(Decl{
		Specs:   []string{"-f", "--format"},
		Options: Options{"help": "output format"},
	}))

	text := p.UsageText()
	assert.Contains(t, text, "stackctl keeps notes")
	assert.Contains(t, text, "usage: stackctl <CMD> [flags]")
	assert.Contains(t, text, "--format")
	assert.Contains(t, text, "output format")
	assert.Contains(t, text, "See the manual for more.")
}
