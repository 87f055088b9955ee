// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

import (
	"maps"
	"slices"
	"strings"
)

// Command describes an external command.
type Command struct {
	// Name of the executable. Looked up in PATH if it does not contain a
	// path separator.
	Name string

	Args []string

	// Additional environment variables. The process environment is
	// inherited.
	Env map[string]string

	// Working directory. Empty means the current directory.
	Dir string
}

// New returns a [Command] for the given name and arguments.
func New(name string, args ...string) Command {
	return Command{
		Name: name,
		Args: args,
	}
}

// WithEnv returns a copy of the [Command] with the given environment variable
// set.
func (c Command) WithEnv(key, value string) Command {
	env := maps.Clone(c.Env)
	if env == nil {
		env = map[string]string{}
	}

	env[key] = value
	c.Env = env

	return c
}

// InDir returns a copy of the [Command] that is run in dir.
func (c Command) InDir(dir string) Command {
	c.Dir = dir
	return c
}

// Environ returns the additional environment variables in "key=value" form,
// sorted by key.
func (c Command) Environ() []string {
	environ := make([]string, 0, len(c.Env))

	for _, key := range slices.Sorted(maps.Keys(c.Env)) {
		environ = append(environ, key+"="+c.Env[key])
	}

	return environ
}

// String returns the command line like it would be typed in a shell.
func (c Command) String() string {
	elements := slices.Concat(c.Environ(), []string{c.Name}, c.Args)
	return strings.Join(elements, " ")
}
