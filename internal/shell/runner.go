// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Runner runs [Command]s.
type Runner interface {
	// Run runs the command to completion. Its output is logged.
	Run(ctx context.Context, cmd Command) error

	// Output runs the command to completion and returns its standard output
	// with surrounding white space removed.
	Output(ctx context.Context, cmd Command) (string, error)
}

var _ Runner = (*Exec)(nil)

// Exec is a [Runner] that executes commands on the host.
type Exec struct {
	// Stdout and Stderr receive the output of [Exec.Run]. If nil, each line
	// is logged at debug level.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements [Runner].
func (e *Exec) Run(ctx context.Context, cmd Command) error {
	execCmd, err := e.command(ctx, cmd)
	if err != nil {
		return err
	}

	stdout, err := execCmd.StdoutPipe()
	if err != nil {
		return &CommandError{Name: cmd.Name, Err: err}
	}

	stderr, err := execCmd.StderrPipe()
	if err != nil {
		return &CommandError{Name: cmd.Name, Err: err}
	}

	err = execCmd.Start()
	if err != nil {
		return commandError(cmd, err)
	}

	outputGroup := errgroup.Group{}
	outputGroup.Go(func() error {
		return pump(stdout, e.Stdout, cmd.Name, "stdout")
	})
	outputGroup.Go(func() error {
		return pump(stderr, e.Stderr, cmd.Name, "stderr")
	})

	// Pipes must be drained before Wait closes them.
	pumpErr := outputGroup.Wait()

	err = execCmd.Wait()
	if err != nil {
		return commandError(cmd, err)
	}

	if pumpErr != nil {
		return &CommandError{Name: cmd.Name, Err: pumpErr}
	}

	return nil
}

// Output implements [Runner].
func (e *Exec) Output(ctx context.Context, cmd Command) (string, error) {
	execCmd, err := e.command(ctx, cmd)
	if err != nil {
		return "", err
	}

	var stderr bytes.Buffer

	execCmd.Stderr = &stderr

	out, err := execCmd.Output()
	if err != nil {
		if stderr.Len() > 0 {
			slog.Debug("Command failed",
				slog.String("command", cmd.Name),
				slog.String("stderr", strings.TrimSpace(stderr.String())))
		}

		return "", commandError(cmd, err)
	}

	return strings.TrimSpace(string(out)), nil
}

func (*Exec) command(ctx context.Context, cmd Command) (*exec.Cmd, error) {
	if cmd.Name == "" {
		return nil, ErrEmptyCommand
	}

	slog.Info("Run command", slog.String("command", cmd.String()))

	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir
	execCmd.Env = slices.Concat(os.Environ(), cmd.Environ())

	return execCmd, nil
}

func commandError(cmd Command, err error) error {
	cmdErr := &CommandError{
		Name:     cmd.Name,
		Err:      err,
		ExitCode: -1,
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}

	return cmdErr
}

func pump(reader io.Reader, writer io.Writer, name, stream string) error {
	if writer != nil {
		_, err := io.Copy(writer, reader)
		if err != nil {
			return fmt.Errorf("copy %s: %w", stream, err)
		}

		return nil
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		slog.Debug(scanner.Text(),
			slog.String("command", name),
			slog.String("stream", stream))
	}

	err := scanner.Err()
	if err != nil {
		// Keep draining, so the command does not block on a full pipe.
		_, _ = io.Copy(io.Discard, reader)

		return fmt.Errorf("read %s: %w", stream, err)
	}

	return nil
}
