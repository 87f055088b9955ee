// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

const (
	enablePrefix  = "enable-"
	disablePrefix = "disable-"
)

// Argument is an argument for QEMU's configure script with or without value.
//
// Its name might be marked to be unique in a list of arguments.
type Argument struct {
	name          string
	value         string
	nonUniqueName bool
}

// String returns the argument as passed to the configure script.
func (a Argument) String() string {
	s := "--" + a.name
	if a.value != "" {
		s += "=" + a.value
	}

	return s
}

// Name returns the name of the [Argument].
func (a Argument) Name() string {
	return a.name
}

// Value returns the value of the [Argument].
func (a Argument) Value() string {
	return a.value
}

// UniqueName returns if the name of the [Argument] must be unique in a list
// of arguments.
func (a Argument) UniqueName() bool {
	return !a.nonUniqueName
}

// key returns the name used for comparison. Feature switches share the key of
// the feature, so enabling and disabling the same feature collide.
func (a Argument) key() string {
	for _, prefix := range []string{enablePrefix, disablePrefix} {
		if feature, found := strings.CutPrefix(a.name, prefix); found {
			return feature
		}
	}

	return a.name
}

// Equal compares the [Argument]s.
//
// If the name is marked unique, only names are compared. Otherwise name and
// value are compared.
func (a Argument) Equal(other Argument) bool {
	if a.key() != other.key() {
		return false
	}

	if a.nonUniqueName {
		return a.name == other.name && a.value == other.value
	}

	return true
}

// UniqueArg returns a new [Argument] with the given name that is marked as
// unique and so can be used only once.
func UniqueArg(name string, value ...string) Argument {
	return Argument{
		name:  name,
		value: strings.Join(value, ","),
	}
}

// RepeatableArg returns a new [Argument] with the given name that is not
// unique and so can be used multiple times.
func RepeatableArg(name string, value ...string) Argument {
	return Argument{
		name:          name,
		value:         strings.Join(value, ","),
		nonUniqueName: true,
	}
}

// Enable returns an [Argument] enabling the given feature.
func Enable(feature string, value ...string) Argument {
	return UniqueArg(enablePrefix+feature, value...)
}

// Disable returns an [Argument] disabling the given feature.
func Disable(feature string) Argument {
	return UniqueArg(disablePrefix + feature)
}

// Configure options whose values are appended to, so they may be given
// more than once.
var repeatableNames = []string{
	"extra-cflags",
	"extra-cxxflags",
	"extra-ldflags",
}

// ParseArgument parses a configure argument in the form "--name" or
// "--name=value". The resulting [Argument] is unique, unless configure
// accumulates the values of the option.
func ParseArgument(s string) (Argument, error) {
	option, found := strings.CutPrefix(s, "--")
	if !found || option == "" || strings.HasPrefix(option, "=") {
		return Argument{}, fmt.Errorf("%w: %q", ErrArgumentInvalid, s)
	}

	name, value, _ := strings.Cut(option, "=")

	if slices.Contains(repeatableNames, name) {
		return RepeatableArg(name, value), nil
	}

	return UniqueArg(name, value), nil
}

// BuildArgumentStrings compiles the [Argument]s into a slice of strings
// which can be passed to the configure script.
//
// It returns an error if any name uniqueness constraints of any [Argument] is
// violated.
func BuildArgumentStrings(args []Argument) ([]string, error) {
	argStrings := make([]string, 0, len(args))

	for idx, arg := range args {
		if i := slices.IndexFunc(args[:idx], arg.Equal); i != -1 {
			return nil, fmt.Errorf(
				"%w: %s, %s",
				ErrArgumentCollision,
				arg.String(),
				args[i].String(),
			)
		}

		argStrings = append(argStrings, arg.String())
	}

	return argStrings, nil
}
