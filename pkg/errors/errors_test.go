package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrInterface,
		ErrLookup,
		ErrParse,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Duplicate command 'status'",
			suggestion: "Rename the command in one of the controllers",
		},
		{
			name:       "interface error",
			code:       ErrInterface,
			message:    "Controller definitions must carry a label",
			suggestion: "Set Definition.Label",
		},
		{
			name:       "lookup error",
			code:       ErrLookup,
			message:    "No handler 'reports' registered",
			suggestion: "Register the handler during start-up",
		},
		{
			name:       "parse error",
			code:       ErrParse,
			message:    "Invalid arguments",
			suggestion: "Run 'stackctl --help' for usage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "basic error formatting",
			err:  New(ErrConfig, "Duplicate command", "Rename the command"),
			expectedParts: []string{
				"Duplicate command",
				"Rename the command",
			},
		},
		{
			name: "error with failure symbol",
			err:  New(ErrLookup, "No handler registered", "Register it first"),
			expectedParts: []string{
				"✗",
				"No handler registered",
			},
		},
		{
			name: "error without suggestion",
			err:  New(ErrParse, "Invalid arguments", ""),
			expectedParts: []string{
				"Invalid arguments",
			},
			notExpected: []string{
				"suggestion",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part, "output should contain %q", part)
			}

			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part, "output should not contain %q", part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("yaml: unmarshal error")
	wrapped := Wrap(cause, "Cannot read notes file")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrConfig, wrapped.Code, "Wrap should default to ErrConfig code")
	assert.Equal(t, "Cannot read notes file", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("unknown flag: --bogus")
	wrapped := WrapWithCode(cause, ErrParse, "Invalid arguments", "Run --help")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrParse, wrapped.Code)
	assert.Equal(t, "Invalid arguments", wrapped.Message)
	assert.Equal(t, "Run --help", wrapped.Suggestion)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestErrorWrappingPreservesCause(t *testing.T) {
	original := errors.New("original error")
	wrapped := WrapWithCode(original, ErrConfig, "Collection failed", "")

	assert.Equal(t, original, wrapped.Cause)
	assert.Contains(t, wrapped.Error(), "original error")
	assert.True(t, errors.Is(wrapped, original))
}

func TestErrorsAs(t *testing.T) {
	wrapped := New(ErrConfig, "Config error", "Fix config")

	var serr *Error
	ok := errors.As(wrapped, &serr)

	assert.True(t, ok)
	assert.Equal(t, ErrConfig, serr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrLookup))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("command 'status' already present"),
		ErrConfig,
		"Duplicate command 'status' declared by both 'db' and 'cache' controllers",
		"Rename the command in one of the controllers",
	)

	output := err.Error()
	lines := strings.Split(output, "\n")

	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"), "first line should start with failure symbol")
	assert.Contains(t, lines[0], "Duplicate command 'status'")
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		wantMsg string
	}{
		{name: "zero exit code", code: 0, wantMsg: "exit code 0"},
		{name: "non-zero exit code", code: 1, wantMsg: "exit code 1"},
		{name: "signal exit code", code: 137, wantMsg: "exit code 137"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewExitError(tt.code)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOk   bool
	}{
		{name: "ExitError returns code", err: NewExitError(42), wantCode: 42, wantOk: true},
		{name: "standard error returns false", err: errors.New("standard error"), wantCode: 0, wantOk: false},
		{name: "nil error returns false", err: nil, wantCode: 0, wantOk: false},
		{name: "structured Error returns false", err: New(ErrConfig, "test", ""), wantCode: 0, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := GetExitCode(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
