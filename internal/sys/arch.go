// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Arch is a CPU architecture as named by QEMU's system emulation targets.
type Arch string

// Supported architectures.
const (
	X8664   Arch = "x86_64"
	AArch64 Arch = "aarch64"
)

// archAliases maps other common names of an architecture to the canonical
// QEMU name.
var archAliases = map[string]Arch{
	"amd64": X8664,
	"arm64": AArch64,
}

func (a *Arch) String() string {
	return string(*a)
}

// Set implements [flag.Value]. Known aliases are accepted and canonicalized.
func (a *Arch) Set(s string) error {
	arch, err := ParseArch(s)
	if err != nil {
		return err
	}

	*a = arch

	return nil
}

// QemuSystem returns the name of the QEMU system emulator binary for the
// architecture.
func (a Arch) QemuSystem() string {
	return "qemu-system-" + string(a)
}

// SoftMMUTarget returns the name of the QEMU build target for the
// architecture.
func (a Arch) SoftMMUTarget() string {
	return string(a) + "-softmmu"
}

// ParseArch returns the canonical [Arch] for the given name.
//
// It returns [ErrArchNotSupported] for unknown names.
func ParseArch(name string) (Arch, error) {
	if alias, exists := archAliases[name]; exists {
		return alias, nil
	}

	switch Arch(name) {
	case X8664, AArch64:
		return Arch(name), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrArchNotSupported, name)
	}
}

// HostArch returns the architecture of the running host as reported by the
// kernel.
func HostArch() (Arch, error) {
	var uname unix.Utsname

	err := unix.Uname(&uname)
	if err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}

	return ParseArch(unix.ByteSliceToString(uname.Machine[:]))
}
