package argparse

import flag "github.com/spf13/pflag"

// Result is the structured outcome of a Parse call. Flag values are read by
// destination name; declared positionals by their specifier.
type Result struct {
	flags       map[string]flagInfo
	fs          *flag.FlagSet
	positionals map[string]string
	rest        []string
}

// String returns the string value stored under dest, or "".
func (r *Result) String(dest string) string {
	if info, ok := r.flags[dest]; ok && info.action == ActionStore {
		v, _ := r.fs.GetString(info.name)
		return v
	}
	if v, ok := r.positionals[dest]; ok {
		return v
	}
	return ""
}

// Bool returns the boolean value stored under dest.
func (r *Result) Bool(dest string) bool {
	if info, ok := r.flags[dest]; ok && info.action == ActionStoreTrue {
		v, _ := r.fs.GetBool(info.name)
		return v
	}
	return false
}

// Count returns the counter value stored under dest.
func (r *Result) Count(dest string) int {
	if info, ok := r.flags[dest]; ok && info.action == ActionStoreCount {
		v, _ := r.fs.GetCount(info.name)
		return v
	}
	return 0
}

// Changed reports whether the flag stored under dest was set explicitly.
func (r *Result) Changed(dest string) bool {
	if info, ok := r.flags[dest]; ok {
		return r.fs.Changed(info.name)
	}
	return false
}

// Positional returns the value bound to a declared positional, or its default.
func (r *Result) Positional(name string) string {
	return r.positionals[name]
}

// Rest returns the tokens left over after flags and declared positionals.
func (r *Result) Rest() []string {
	return r.rest
}
