// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aibor/qemu-resources/internal/ci"
	"github.com/aibor/qemu-resources/internal/fetch"
	"github.com/aibor/qemu-resources/internal/qemu"
	"github.com/aibor/qemu-resources/internal/shell"
	"github.com/aibor/qemu-resources/internal/sys"
)

// Downloads are refreshed after this age. Source archives are versioned, but
// firmware images are fetched from "latest" locations.
const downloadCacheMaxAge = 7 * 24 * time.Hour

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func detectHost() (sys.HostOS, sys.Arch, error) {
	hostOS, err := sys.CurrentHostOS()
	if err != nil {
		return "", "", err //nolint:wrapcheck
	}

	// An unknown machine type can still be overridden by flag.
	arch, err := sys.HostArch()
	if err != nil {
		slog.Debug("Failed to detect host architecture", slog.Any("error", err))
	}

	return hostOS, arch, nil
}

func parseArgs(args []string, hostOS sys.HostOS, arch sys.Arch, output io.Writer) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags := newFlags(output, hostOS, arch)

	err = flags.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	return flags, nil
}

func run(ctx context.Context, cfg ci.Config, output IO) error {
	extraFlags, err := qemu.ExtraFlagsFromEnv(os.Getenv)
	if err != nil {
		return err //nolint:wrapcheck
	}

	cfg.ExtraConfigureFlags = extraFlags

	slog.Debug("Configuration", slog.Any("config", cfg))

	runner := &ci.Runner{
		Config: cfg,
		Shell: &shell.Exec{
			Stdout: output.Stdout,
			Stderr: output.Stderr,
		},
		Downloader: &fetch.Fetcher{
			MaxAge: downloadCacheMaxAge,
		},
	}

	return runner.Run(ctx) //nolint:wrapcheck
}

func handleParseArgsError(err error, errOutput io.Writer) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		printError(errOutput, err)
	}

	return -1
}

func handleRunError(err error, errOutput io.Writer) int {
	if err == nil {
		return 0
	}

	exitCode := -1

	var cmdErr *shell.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		exitCode = cmdErr.ExitCode
	}

	printError(errOutput, err)

	return exitCode
}

func printError(errOutput io.Writer, err error) {
	fmt.Fprintf(errOutput, "Error [%s]: %v\n", name, err)
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	hostOS, arch, err := detectHost()
	if err != nil {
		printError(cfg.Stderr, err)
		return -1
	}

	flags, err := parseArgs(args, hostOS, arch, cfg.Stderr)
	if err != nil {
		return handleParseArgsError(err, cfg.Stderr)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = run(ctx, flags.cfg, cfg)

	return handleRunError(err, cfg.Stderr)
}
