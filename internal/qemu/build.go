// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aibor/qemu-resources/internal/shell"
	"github.com/aibor/qemu-resources/internal/sys"
	"github.com/shirou/gopsutil/v4/cpu"
)

const (
	buildDirName    = "build"
	firmwareDirName = "pc-bios"
	qemuImgName     = "qemu-img"
)

// Build describes a QEMU build in an unpacked source tree.
type Build struct {
	// SourceDir is the path of the unpacked source tree.
	SourceDir string

	Configure ConfigureSpec

	// LDFlags are passed to the configure script in the LDFLAGS environment
	// variable.
	LDFlags []string

	// Number of parallel make jobs. [JobCount] if 0.
	Jobs int
}

// Dir returns the build directory.
func (b Build) Dir() string {
	return filepath.Join(b.SourceDir, buildDirName)
}

// Binary returns the path of the built system emulator for arch.
func (b Build) Binary(arch sys.Arch) string {
	return filepath.Join(b.Dir(), arch.QemuSystem())
}

// QemuImg returns the path of the built qemu-img tool.
func (b Build) QemuImg() string {
	return filepath.Join(b.Dir(), qemuImgName)
}

// FirmwareDir returns the directory of the firmware files shipped with the
// source.
func (b Build) FirmwareDir() string {
	return filepath.Join(b.SourceDir, firmwareDirName)
}

// Commands returns the configure and make commands.
func (b Build) Commands() ([]shell.Command, error) {
	args, err := b.Configure.Args()
	if err != nil {
		return nil, fmt.Errorf("configure args: %w", err)
	}

	jobs := b.Jobs
	if jobs < 1 {
		jobs = JobCount()
	}

	configure := shell.New("../configure", args...).
		InDir(b.Dir()).
		WithEnv("LDFLAGS", strings.Join(b.LDFlags, " "))

	compile := shell.New("make", "-j"+strconv.Itoa(jobs)).
		InDir(b.Dir())

	return []shell.Command{configure, compile}, nil
}

// Run configures and compiles QEMU.
func (b Build) Run(ctx context.Context, runner shell.Runner) error {
	commands, err := b.Commands()
	if err != nil {
		return err
	}

	err = os.MkdirAll(b.Dir(), 0o755)
	if err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}

	for _, cmd := range commands {
		err := runner.Run(ctx, cmd)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
	}

	slog.Info("QEMU built", slog.String("dir", b.Dir()))

	return nil
}

// JobCount returns the number of logical CPUs of the host, or 1 if it can not
// be determined.
func JobCount() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		slog.Debug("Failed to count CPUs", slog.Any("error", err))
		return 1
	}

	return count
}
