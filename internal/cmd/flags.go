// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aibor/qemu-resources/internal/ci"
	"github.com/aibor/qemu-resources/internal/sys"
)

const (
	name = "qemu-resources"

	jobsMax = 1024

	usageMessage = `Usage of 'qemu-resources':
    qemu-resources [flags...]

Builds QEMU and writes the resource archives for the host:
    resources-<os>.tar              qemu-img
    xhyve-<os>.tar                  xhyve, macOS x86_64 only
    qemu-system-<arch>-<os>.tar     system emulator and firmwares

All flags can also be provided via environment variable QEMU_RESOURCES_ARGS:
    QEMU_RESOURCES_ARGS="-skip-install -debug" qemu-resources

All flags can also be provided via file ./.qemu-resources-args, with one
argument per line.

Additional flags for QEMU's configure script can be provided via environment
variable QEMU_CONFIGURE_FLAGS.
`
)

type flags struct {
	cfg     ci.Config
	jobs    uint64
	flagSet *flag.FlagSet

	version bool
	debug   bool
}

func newFlags(output io.Writer, hostOS sys.HostOS, arch sys.Arch) *flags {
	flags := &flags{
		cfg: ci.DefaultConfig(hostOS, arch),
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	if f.flagSet.NArg() > 0 {
		return f.fail(fmt.Sprintf("unexpected arguments: %v", f.flagSet.Args()), nil)
	}

	if f.cfg.Arch == "" {
		return f.fail("unknown host architecture (use -arch)", nil)
	}

	if f.cfg.QemuVersion == "" {
		return f.fail("no QEMU version given (use -qemu-version)", nil)
	}

	f.cfg.Jobs = int(f.jobs) //nolint:gosec

	return nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.Var(
		&f.cfg.Arch,
		"arch",
		"host architecture the build profile is selected for: x86_64, aarch64",
	)

	flagSet.Var(
		(*FilePath)(&f.cfg.WorkDir),
		"work-dir",
		"directory QEMU is downloaded and built in",
	)

	flagSet.Var(
		(*FilePath)(&f.cfg.OutputDir),
		"output-dir",
		"directory the archives are written to",
	)

	flagSet.StringVar(
		&f.cfg.QemuVersion,
		"qemu-version",
		f.cfg.QemuVersion,
		"QEMU version to build",
	)

	flagSet.StringVar(
		&f.cfg.QemuURL,
		"qemu-url",
		f.cfg.QemuURL,
		"QEMU source archive URL (default depends on version)",
	)

	flagSet.StringVar(
		&f.cfg.LinaroUEFIURL,
		"linaro-uefi-url",
		f.cfg.LinaroUEFIURL,
		"Linaro UEFI firmware URL",
	)

	flagSet.BoolVar(
		&f.cfg.SkipInstall,
		"skip-install",
		f.cfg.SkipInstall,
		"do not install build prerequisites with the package manager",
	)

	flagSet.Var(
		&limitedUintValue{
			Value: &f.jobs,
			max:   jobsMax,
		},
		"jobs",
		"number of parallel make jobs (default is the number of CPUs)",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
