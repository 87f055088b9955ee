// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package validate_test

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/qemu-resources/internal/bundle"
	"github.com/aibor/qemu-resources/internal/sys"
	"github.com/stretchr/testify/require"
)

type archiveEntry struct {
	name     string
	typeflag byte
}

func regular(name string) archiveEntry {
	return archiveEntry{name: name, typeflag: tar.TypeReg}
}

func directory(name string) archiveEntry {
	return archiveEntry{name: name, typeflag: tar.TypeDir}
}

func symlink(name string) archiveEntry {
	return archiveEntry{name: name, typeflag: tar.TypeSymlink}
}

// writeArchive writes a tar archive with the given entries. Regular files
// have their own name as content.
func writeArchive(tb testing.TB, path string, entries ...archiveEntry) {
	tb.Helper()

	file, err := os.Create(path)
	require.NoError(tb, err)

	defer file.Close()

	writer := tar.NewWriter(file)

	for _, entry := range entries {
		hdr := &tar.Header{
			Name:     entry.name,
			Typeflag: entry.typeflag,
			Mode:     0o755,
		}

		switch entry.typeflag {
		case tar.TypeReg:
			hdr.Size = int64(len(entry.name))
		case tar.TypeSymlink:
			hdr.Linkname = "target"
		}

		require.NoError(tb, writer.WriteHeader(hdr))

		if entry.typeflag == tar.TypeReg {
			_, err := writer.Write([]byte(entry.name))
			require.NoError(tb, err)
		}
	}

	require.NoError(tb, writer.Close())
	require.NoError(tb, file.Close())
}

// writeQemuSystemArchive writes the qemu-system archive for the given
// architecture and host into a new temporary directory and returns the
// directory.
func writeQemuSystemArchive(
	tb testing.TB,
	arch sys.Arch,
	hostOS sys.HostOS,
	entries ...archiveEntry,
) string {
	tb.Helper()

	dir := tb.TempDir()
	writeArchive(tb, filepath.Join(dir, bundle.QemuSystemArchiveName(arch, hostOS)), entries...)

	return dir
}

// x86_64 firmwares expected on Linux hosts.
var x8664Firmwares = []string{
	"bios-256k.bin",
	"efi-e1000.rom",
	"efi-virtio.rom",
	"kvmvapic.bin",
	"vgabios-stdvga.bin",
	"uefi.fd",
}

// x8664Entries returns the complete x86_64 archive content as produced by
// tar with a leading "./".
func x8664Entries() []archiveEntry {
	return []archiveEntry{
		directory("./"),
		directory("./bin/"),
		regular("./bin/qemu"),
		directory("./share/"),
		directory("./share/qemu/"),
		regular("./share/qemu/bios-256k.bin"),
		regular("./share/qemu/efi-e1000.rom"),
		regular("./share/qemu/efi-virtio.rom"),
		regular("./share/qemu/kvmvapic.bin"),
		regular("./share/qemu/vgabios-stdvga.bin"),
		regular("./share/qemu/uefi.fd"),
	}
}

func without(entries []archiveEntry, name string) []archiveEntry {
	result := make([]archiveEntry, 0, len(entries))

	for _, entry := range entries {
		if entry.name != name {
			result = append(result, entry)
		}
	}

	return result
}
