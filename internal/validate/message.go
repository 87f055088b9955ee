// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import (
	"slices"
	"strings"
)

type messageFormatter struct {
	validator *QemuSystem
}

func (f messageFormatter) format() string {
	lines := f.expected()
	lines = append(lines, "")
	lines = append(lines, f.actual()...)
	lines = append(lines, "")
	lines = append(lines, f.diff()...)

	return strings.Join(lines, "\n")
}

// expected lists the QEMU binaries found in the archive, not any expected
// ones, followed by the expected firmware paths.
func (f messageFormatter) expected() []string {
	return []string{
		"Expected '" + f.validator.tarFile.Filename() + "' to contain:",
		strings.Join(f.validator.tarFile.qemuBinary, "\n"),
		strings.Join(fullFirmwarePaths(f.validator.firmwares), "\n"),
	}
}

func (f messageFormatter) actual() []string {
	return append([]string{"Actual:"}, f.validator.tarFile.paths...)
}

// diff lists the union of expected and actual firmware paths. Missing entries
// are prefixed with "-", extra entries with "+".
func (f messageFormatter) diff() []string {
	missing := fullFirmwarePaths(f.validator.missing)
	extra := fullFirmwarePaths(f.validator.extra)

	union := fullFirmwarePaths(f.validator.firmwares)
	union = append(union, f.validator.tarFile.FirmwarePaths()...)

	lines := []string{"Diff:"}

	for idx, path := range union {
		if slices.Contains(union[:idx], path) {
			continue
		}

		line := path
		if slices.Contains(missing, line) {
			line = "-" + line
		}

		if slices.Contains(extra, line) {
			line = "+" + line
		}

		lines = append(lines, line)
	}

	return lines
}
