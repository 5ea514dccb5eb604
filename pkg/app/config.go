package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/clistack/clistack/pkg/errors"
	"github.com/spf13/viper"
)

// LoadConfig builds the configuration store for an application named name.
// Search order:
//  1. Explicit path (from a --config style flag), fatal if missing
//  2. .<name>.yaml in the current directory
//  3. config.yaml under ~/.config/<name>/
//
// Environment variables prefixed with the upper-cased name override file
// values. A missing config file is not an error; defaults apply.
func LoadConfig(name, explicit string, defaults map[string]any) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot read config file "+explicit,
				"Check the path exists and contains valid YAML")
		}
		return v, nil
	}

	path := findConfig(name)
	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot read config file "+path,
			"Check the YAML syntax")
	}
	return v, nil
}

// findConfig locates the config file, or returns "" when none exists.
func findConfig(name string) string {
	cwd, err := os.Getwd()
	if err == nil {
		local := filepath.Join(cwd, "."+name+".yaml")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		global := filepath.Join(home, ".config", name, "config.yaml")
		if _, err := os.Stat(global); err == nil {
			return global
		}
	}
	return ""
}
