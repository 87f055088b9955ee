// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/aibor/qemu-resources/internal/shell"
	"github.com/aibor/qemu-resources/internal/sys"
)

// Profile holds the build settings of a host.
type Profile struct {
	OS   sys.HostOS
	Arch sys.Arch

	// Architectures QEMU system emulators are built for.
	Architectures []sys.Arch

	// Install installs the build prerequisites.
	Install shell.Command

	// BuildFlags are additional flags for QEMU's configure script.
	BuildFlags []string

	// UEFISource is the path of an UEFI firmware provided by the host's
	// package manager. Empty if the host does not provide one.
	UEFISource string

	// Xhyve is true if xhyve is built and bundled on this host.
	Xhyve bool

	ldFlags func(ctx context.Context, runner shell.Runner) ([]string, error)
}

// LDFlags returns the linker flags QEMU is built with.
func (p Profile) LDFlags(ctx context.Context, runner shell.Runner) ([]string, error) {
	if p.ldFlags == nil {
		return nil, nil
	}

	return p.ldFlags(ctx, runner)
}

type key struct {
	os   sys.HostOS
	arch sys.Arch
}

var macOSInstall = shell.New("brew", "install", "ninja", "pixman", "glib").
	WithEnv("HOMEBREW_NO_INSTALL_CLEANUP", "true")

var linuxInstall = shell.New("apk", "add", "--no-cache",
	"bash",
	"curl",
	"g++",
	"gcc",
	"glib-dev",
	"glib-static",
	"make",
	"musl-dev",
	"ninja",
	"ovmf",
	"perl",
	"pixman-dev",
	"pixman-static",
	"pkgconf",
	"python3",
	"xz",
	"zlib-static",
)

const linuxUEFISource = "/usr/share/OVMF/OVMF.fd"

var profiles = map[key]Profile{
	{sys.MacOS, sys.X8664}: {
		Architectures: []sys.Arch{sys.X8664, sys.AArch64},
		Install:       macOSInstall,
		Xhyve:         true,
		ldFlags:       macOSLDFlags,
	},
	{sys.MacOS, sys.AArch64}: {
		Architectures: []sys.Arch{sys.AArch64},
		Install:       macOSInstall,
		ldFlags:       macOSLDFlags,
	},
	{sys.Linux, sys.X8664}: {
		Architectures: []sys.Arch{sys.X8664, sys.AArch64},
		Install:       linuxInstall,
		BuildFlags:    []string{"--static"},
		UEFISource:    linuxUEFISource,
		ldFlags:       linuxLDFlags,
	},
	{sys.Linux, sys.AArch64}: {
		Architectures: []sys.Arch{sys.AArch64},
		Install:       linuxInstall,
		BuildFlags:    []string{"--static"},
		UEFISource:    linuxUEFISource,
		ldFlags:       linuxLDFlags,
	},
}

// Lookup returns the [Profile] for the given host.
func Lookup(hostOS sys.HostOS, arch sys.Arch) (Profile, error) {
	profile, exists := profiles[key{hostOS, arch}]
	if !exists {
		return Profile{}, fmt.Errorf("%w: %s %s", ErrNoProfile, hostOS, arch)
	}

	profile.OS = hostOS
	profile.Arch = arch
	profile.Architectures = slices.Clone(profile.Architectures)
	profile.BuildFlags = slices.Clone(profile.BuildFlags)

	return profile, nil
}

// Static libraries linked into the macOS binaries, relative to the Homebrew
// prefix.
var macOSStaticLibs = []string{
	"opt/gettext/lib/libintl.a",
	"opt/glib/lib/libgio-2.0.a",
	"opt/glib/lib/libglib-2.0.a",
	"opt/glib/lib/libgmodule-2.0.a",
	"opt/glib/lib/libgobject-2.0.a",
	"opt/pixman/lib/libpixman-1.a",
}

func macOSLDFlags(ctx context.Context, runner shell.Runner) ([]string, error) {
	prefix, err := runner.Output(ctx, shell.New("brew", "--prefix"))
	if err != nil {
		return nil, fmt.Errorf("homebrew prefix: %w", err)
	}

	flags := []string{
		"-framework", "Foundation",
		"-liconv",
		"-lpcre",
		"-lresolv",
		"-dead_strip",
	}

	for _, lib := range macOSStaticLibs {
		flags = append(flags, filepath.Join(prefix, lib))
	}

	return flags, nil
}

func linuxLDFlags(context.Context, shell.Runner) ([]string, error) {
	return []string{"-s"}, nil
}
