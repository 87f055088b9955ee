// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"github.com/aibor/qemu-resources/internal/sys"
)

// Paths inside qemu-system archives.
const (
	// QemuBinaryPath is the path of the QEMU system emulator binary.
	QemuBinaryPath = "bin/qemu"

	// FirmwareDir is the directory all firmware files are put in.
	FirmwareDir = "share/qemu/"
)

// Paths inside xhyve archives.
const (
	xhyveBinaryPath = "bin/xhyve"
	userbootPath    = "userboot.so"
	uefiPath        = "uefi.fd"
)

const qemuImgPath = "qemu-img"

const archiveExt = ".tar"

// QemuSystemArchiveName returns the name of the qemu-system archive for the
// given architecture and host, like "qemu-system-x86_64-linux.tar".
func QemuSystemArchiveName(arch sys.Arch, hostOS sys.HostOS) string {
	return arch.QemuSystem() + "-" + hostOS.String() + archiveExt
}

// ResourcesArchiveName returns the name of the archive with the QEMU tools.
func ResourcesArchiveName(hostOS sys.HostOS) string {
	return "resources-" + hostOS.String() + archiveExt
}

// XhyveArchiveName returns the name of the xhyve archive.
func XhyveArchiveName(hostOS sys.HostOS) string {
	return "xhyve-" + hostOS.String() + archiveExt
}
