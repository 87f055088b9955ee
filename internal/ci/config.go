// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ci

import (
	"github.com/aibor/qemu-resources/internal/qemu"
	"github.com/aibor/qemu-resources/internal/sys"
)

// Config is the configuration of a [Runner].
type Config struct {
	HostOS sys.HostOS
	Arch   sys.Arch

	// WorkDir the sources are unpacked and built in.
	WorkDir string

	// OutputDir the archives are written to.
	OutputDir string

	QemuVersion string

	// QemuURL overrides the source archive location.
	QemuURL string

	LinaroUEFIURL string

	// ExtraConfigureFlags are passed to QEMU's configure script in addition
	// to the default flags.
	ExtraConfigureFlags []string

	// SkipInstall skips installing the build prerequisites.
	SkipInstall bool

	// Number of parallel make jobs. Number of CPUs if 0.
	Jobs int
}

// DefaultConfig returns the [Config] for the given host with default values.
func DefaultConfig(hostOS sys.HostOS, arch sys.Arch) Config {
	return Config{
		HostOS:        hostOS,
		Arch:          arch,
		WorkDir:       "work",
		OutputDir:     ".",
		QemuVersion:   qemu.DefaultVersion,
		LinaroUEFIURL: qemu.DefaultLinaroUEFIURL,
	}
}
