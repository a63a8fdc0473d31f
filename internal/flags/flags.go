// Package flags parses argument lists where flags attach to the positional
// argument before them, as in `patchy pr-fetch 42 -b=fix 43`.
//
// Value flags are spelled with their assignment, e.g. "-b=" and
// "--branch-name=", and match any argument with that prefix. Boolean flags
// match exactly. After "--" every argument is positional.
package flags

import (
	"errors"
	"fmt"
	"strings"
)

// Terminator ends flag parsing
const Terminator = "--"

// ErrInvalidFlag is returned for arguments that look like flags but match none
var ErrInvalidFlag = errors.New("invalid flag")

// Flag is a flag with a short and a long spelling
type Flag struct {
	Short       string
	Long        string
	Description string
}

// TakesValue reports whether the flag is assigned a value with "="
func (f *Flag) TakesValue() bool {
	return strings.HasSuffix(f.Long, "=")
}

// Matches reports whether arg is a spelling of f
func (f *Flag) Matches(arg string) bool {
	if f.TakesValue() {
		return strings.HasPrefix(arg, f.Short) || strings.HasPrefix(arg, f.Long)
	}
	return arg == f.Short || arg == f.Long
}

// ExtractValue returns the value assigned in arg, e.g. "abc" for
// "--repo-name=abc". ok is false when arg is not a spelling of f.
func (f *Flag) ExtractValue(arg string) (value string, ok bool) {
	if !f.TakesValue() {
		return "", false
	}
	if v, found := strings.CutPrefix(arg, f.Short); found {
		return v, true
	}
	if v, found := strings.CutPrefix(arg, f.Long); found {
		return v, true
	}
	return "", false
}

// String formats the flag for help output
func (f *Flag) String() string {
	return f.Short + ", " + f.Long
}

// IsValidFlag reports whether arg is a spelling of any of the available flags
func IsValidFlag(arg string, available []*Flag) bool {
	for _, flag := range available {
		if flag.Matches(arg) {
			return true
		}
	}
	return false
}

// Positional is a positional argument with the flags written right after it
type Positional struct {
	Value    string
	Trailing []string
}

// TrailingValue returns the value of the first trailing spelling of f
func (p Positional) TrailingValue(f *Flag) (string, bool) {
	for _, arg := range p.Trailing {
		if v, ok := f.ExtractValue(arg); ok {
			return v, true
		}
	}
	return "", false
}

// Args is a parsed argument list
type Args struct {
	Positionals []Positional
	Flags       []string
}

// Has reports whether f was given anywhere
func (a *Args) Has(f *Flag) bool {
	for _, arg := range a.Flags {
		if f.Matches(arg) {
			return true
		}
	}
	return false
}

// Value returns the value of the last spelling of f
func (a *Args) Value(f *Flag) (string, bool) {
	value, found := "", false
	for _, arg := range a.Flags {
		if v, ok := f.ExtractValue(arg); ok {
			value, found = v, true
		}
	}
	return value, found
}

// Parse splits args into positionals and flags. A flag directly following a
// positional (or its other trailing flags) is also attached to that
// positional.
func Parse(args []string, available []*Flag) (*Args, error) {
	parsed := &Args{}
	noMoreFlags := false
	attach := false

	for _, arg := range args {
		if arg == Terminator && !noMoreFlags {
			noMoreFlags = true
			attach = false
			continue
		}

		if strings.HasPrefix(arg, "-") && !noMoreFlags {
			if !IsValidFlag(arg, available) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidFlag, arg)
			}
			parsed.Flags = append(parsed.Flags, arg)
			if attach {
				last := &parsed.Positionals[len(parsed.Positionals)-1]
				last.Trailing = append(last.Trailing, arg)
			}
			continue
		}

		parsed.Positionals = append(parsed.Positionals, Positional{Value: arg})
		attach = true
	}
	return parsed, nil
}
