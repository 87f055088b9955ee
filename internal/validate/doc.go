// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validate checks the file structure of qemu-system resource archives.
//
// A [TarFile] reads the regular file entries of an archive once. A
// [QemuSystem] compares the firmware files found in the archive with an
// expected set and renders a diagnostic message listing the expected and the
// actual content together with a diff.
//
// The resource test suite in this package runs only with the "resources" build
// tag and expects the archives to be present in the directory given by
// -resources-dir:
//
//	go test -tags resources ./internal/validate -resources-dir=/path/to/archives
package validate
