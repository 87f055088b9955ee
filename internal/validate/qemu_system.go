// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import (
	"fmt"
	"slices"

	"github.com/aibor/qemu-resources/internal/sys"
)

// QemuSystem validates the qemu-system archive of one architecture against
// the expected firmware files.
type QemuSystem struct {
	arch      sys.Arch
	firmwares []string
	tarFile   *TarFile
	extra     []string
	missing   []string
}

// NewQemuSystem reads the qemu-system archive for the given architecture and
// the running host from the current working directory.
func NewQemuSystem(arch sys.Arch, firmwares []string) (*QemuSystem, error) {
	hostOS, err := sys.CurrentHostOS()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return NewQemuSystemFor(".", arch, hostOS, firmwares)
}

// NewQemuSystemFor reads the qemu-system archive for the given architecture
// and host operating system from dir.
//
// Errors reading the archive are returned as is, so they can be told apart
// from a structural mismatch reported by [QemuSystem.Valid].
func NewQemuSystemFor(
	dir string,
	arch sys.Arch,
	hostOS sys.HostOS,
	firmwares []string,
) (*QemuSystem, error) {
	tarFile, err := TarFileFor(dir, arch, hostOS)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", arch.QemuSystem(), err)
	}

	return newQemuSystem(arch, tarFile, firmwares), nil
}

func newQemuSystem(arch sys.Arch, tarFile *TarFile, firmwares []string) *QemuSystem {
	expected := slices.Clone(firmwares)
	slices.Sort(expected)

	actual := tarFile.Firmwares()

	return &QemuSystem{
		arch:      arch,
		firmwares: expected,
		tarFile:   tarFile,
		extra:     difference(actual, expected),
		missing:   difference(expected, actual),
	}
}

// Arch returns the architecture the archive is validated for.
func (v *QemuSystem) Arch() sys.Arch {
	return v.arch
}

// TarFile returns the validated archive.
func (v *QemuSystem) TarFile() *TarFile {
	return v.tarFile
}

// Firmwares returns the sorted expected firmware file names.
func (v *QemuSystem) Firmwares() []string {
	return slices.Clone(v.firmwares)
}

// Extra returns the firmware files present in the archive but not expected.
func (v *QemuSystem) Extra() []string {
	return slices.Clone(v.extra)
}

// Missing returns the expected firmware files absent from the archive.
func (v *QemuSystem) Missing() []string {
	return slices.Clone(v.missing)
}

// HasQemuBinary returns true if the archive contains at least one entry with
// the QEMU binary prefix.
func (v *QemuSystem) HasQemuBinary() bool {
	return len(v.tarFile.qemuBinary) > 0
}

// FirmwareMatching returns true if the archive's firmware files are exactly
// the expected ones.
func (v *QemuSystem) FirmwareMatching() bool {
	return len(v.extra) == 0 && len(v.missing) == 0
}

// Valid returns true if the archive contains the QEMU binary and exactly the
// expected firmware files.
func (v *QemuSystem) Valid() bool {
	return v.HasQemuBinary() && v.FirmwareMatching()
}

// Message returns a human-readable description of the expected and actual
// archive content. It can always be computed, independent of the result of
// [QemuSystem.Valid].
func (v *QemuSystem) Message() string {
	return messageFormatter{v}.format()
}

// difference returns all elements of left that are not in right. The order of
// left is preserved, duplicates are kept.
func difference(left, right []string) []string {
	var result []string

	for _, elem := range left {
		if !slices.Contains(right, elem) {
			result = append(result, elem)
		}
	}

	return result
}
