// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"

	"github.com/aibor/qemu-resources/internal/sys"
)

// Names of UEFI firmware files in the qemu-system archives.
const (
	UEFIName       = "uefi.fd"
	LinaroUEFIName = "linaro_uefi.fd"
)

// DefaultLinaroUEFIURL is the location of Linaro's UEFI build for the QEMU
// arm virt machine.
const DefaultLinaroUEFIURL = "http://releases.linaro.org/components/kernel/uefi-linaro/latest/release/qemu64/QEMU_EFI.fd"

// UEFISource defines where the UEFI firmware of a [Target] comes from.
type UEFISource int

const (
	// UEFIFromHost takes the firmware provided by the host's package
	// manager, if any.
	UEFIFromHost UEFISource = iota

	// UEFIFromEDK2 takes the EDK2 firmware shipped with the QEMU source.
	UEFIFromEDK2
)

// Target describes a QEMU system emulator and the firmwares bundled with it.
type Target struct {
	Arch sys.Arch

	// Firmwares copied from the firmware directory of the source tree.
	Firmwares []string

	UEFI UEFISource

	// LinaroUEFI is true if Linaro's UEFI firmware is bundled additionally.
	LinaroUEFI bool
}

var targets = map[sys.Arch]Target{
	sys.X8664: {
		Arch: sys.X8664,
		Firmwares: []string{
			"bios-256k.bin",
			"efi-e1000.rom",
			"efi-virtio.rom",
			"kvmvapic.bin",
			"vgabios-stdvga.bin",
		},
		UEFI: UEFIFromHost,
	},
	sys.AArch64: {
		Arch: sys.AArch64,
		Firmwares: []string{
			"efi-e1000.rom",
			"efi-virtio.rom",
		},
		UEFI:       UEFIFromEDK2,
		LinaroUEFI: true,
	},
}

// TargetFor returns the [Target] for the given architecture.
func TargetFor(arch sys.Arch) (Target, error) {
	target, exists := targets[arch]
	if !exists {
		return Target{}, fmt.Errorf("%w: %s", ErrUnknownTarget, arch)
	}

	target.Firmwares = slices.Clone(target.Firmwares)

	return target, nil
}
