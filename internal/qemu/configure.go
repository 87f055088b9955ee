// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"strings"

	"github.com/aibor/qemu-resources/internal/sys"
	"github.com/mattn/go-shellwords"
)

// DefaultPrefix is the installation prefix QEMU is configured with. The
// binaries are relocated by the consumers of the archives, so it only needs
// to be stable.
const DefaultPrefix = "/tmp/cross-platform-actions"

// ExtraFlagsEnv is the environment variable additional configure flags are
// read from by [ExtraFlagsFromEnv].
const ExtraFlagsEnv = "QEMU_CONFIGURE_FLAGS"

// Features that are not needed for running the system emulators headless.
var disabledFeatures = []string{
	"auth-pam",
	"bochs",
	"bsd-user",
	"cfi-debug",
	"cocoa",
	"curses",
	"debug-info",
	"debug-mutex",
	"dmg",
	"docs",
	"gcrypt",
	"gnutls",
	"gtk",
	"guest-agent",
	"guest-agent-msi",
	"hax",
	"kvm",
	"libiscsi",
	"libssh",
	"libusb",
	"linux-user",
	"nettle",
	"parallels",
	"qcow1",
	"qed",
	"replication",
	"sdl",
	"smartcard",
	"snappy",
	"usb-redir",
	"user",
	"vde",
	"vdi",
	"vnc",
	"vvfat",
	"xen",
	"lzo",
	"zstd",
}

// ConfigureSpec describes the arguments for QEMU's configure script.
type ConfigureSpec struct {
	// Installation prefix. [DefaultPrefix] if empty.
	Prefix string

	// Architectures to build system emulators for.
	Targets []sys.Arch

	// Host specific flags.
	BuildFlags []string

	// Additional flags, for example from [ExtraFlagsFromEnv].
	ExtraFlags []string
}

// Arguments returns the [Argument]s for the configure script.
func (s ConfigureSpec) Arguments() ([]Argument, error) {
	if len(s.Targets) == 0 {
		return nil, ErrNoTargets
	}

	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	args := []Argument{UniqueArg("prefix", prefix)}

	for _, feature := range disabledFeatures {
		args = append(args, Disable(feature))
	}

	args = append(args,
		Enable("lto"),
		Enable("slirp", "git"),
		Enable("tools"),
	)

	targets := make([]string, 0, len(s.Targets))
	for _, arch := range s.Targets {
		targets = append(targets, arch.SoftMMUTarget())
	}

	args = append(args, UniqueArg("target-list", targets...))

	for _, flags := range [][]string{s.BuildFlags, s.ExtraFlags} {
		for _, flag := range flags {
			arg, err := ParseArgument(flag)
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}
	}

	return args, nil
}

// Args returns the argument strings for the configure script.
func (s ConfigureSpec) Args() ([]string, error) {
	args, err := s.Arguments()
	if err != nil {
		return nil, err
	}

	return BuildArgumentStrings(args)
}

// ExtraFlagsFromEnv returns the configure flags from [ExtraFlagsEnv] split
// like a shell would do it.
func ExtraFlagsFromEnv(getenv func(string) string) ([]string, error) {
	value := strings.TrimSpace(getenv(ExtraFlagsEnv))
	if value == "" {
		return nil, nil
	}

	flags, err := shellwords.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("parse %s value %q: %w", ExtraFlagsEnv, value, err)
	}

	return flags, nil
}
