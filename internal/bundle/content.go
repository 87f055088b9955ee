// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/aibor/qemu-resources/internal/sys"
)

// QemuSystem describes the content of a qemu-system archive.
type QemuSystem struct {
	Arch   sys.Arch
	HostOS sys.HostOS

	// Path of the built QEMU system emulator binary.
	Binary string

	// Directory the Firmwares are copied from.
	FirmwareSourceDir string

	// File names of firmwares in FirmwareSourceDir.
	Firmwares []string

	// Additional firmware files from other locations, keyed by their name in
	// the archive.
	ExtraFirmwares map[string]string
}

// Archive returns the [Archive] with the emulator binary and its firmwares.
func (s QemuSystem) Archive() (Archive, error) {
	layout := NewLayout()

	err := layout.AddFile(QemuBinaryPath, s.Binary)
	if err != nil {
		return Archive{}, fmt.Errorf("add binary: %w", err)
	}

	sources := make([]string, 0, len(s.Firmwares))
	for _, firmware := range s.Firmwares {
		sources = append(sources, filepath.Join(s.FirmwareSourceDir, firmware))
	}

	err = layout.AddFiles(FirmwareDir, sources...)
	if err != nil {
		return Archive{}, fmt.Errorf("add firmware: %w", err)
	}

	for _, name := range slices.Sorted(maps.Keys(s.ExtraFirmwares)) {
		err := layout.AddFile(FirmwareDir+name, s.ExtraFirmwares[name])
		if err != nil {
			return Archive{}, fmt.Errorf("add firmware: %w", err)
		}
	}

	archive := Archive{
		Name:   QemuSystemArchiveName(s.Arch, s.HostOS),
		Layout: layout,
	}

	return archive, nil
}

// Resources returns the [Archive] with the QEMU tools shipped beside the
// system emulators.
func Resources(hostOS sys.HostOS, qemuImg string) (Archive, error) {
	layout := NewLayout()

	err := layout.AddFile(qemuImgPath, qemuImg)
	if err != nil {
		return Archive{}, fmt.Errorf("add qemu-img: %w", err)
	}

	archive := Archive{
		Name:   ResourcesArchiveName(hostOS),
		Layout: layout,
	}

	return archive, nil
}

// Xhyve describes the content of the xhyve archive.
type Xhyve struct {
	HostOS   sys.HostOS
	Binary   string
	Userboot string

	// Optional UEFI firmware. Omitted if empty.
	UEFI string
}

// Archive returns the xhyve [Archive].
func (s Xhyve) Archive() (Archive, error) {
	layout := NewLayout()

	files := map[string]string{
		xhyveBinaryPath: s.Binary,
		userbootPath:    s.Userboot,
	}

	if s.UEFI != "" {
		files[uefiPath] = s.UEFI
	}

	for _, name := range slices.Sorted(maps.Keys(files)) {
		err := layout.AddFile(name, files[name])
		if err != nil {
			return Archive{}, fmt.Errorf("add %s: %w", name, err)
		}
	}

	archive := Archive{
		Name:   XhyveArchiveName(s.HostOS),
		Layout: layout,
	}

	return archive, nil
}
