// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aibor/qemu-resources/internal/bundle"
	"github.com/aibor/qemu-resources/internal/sys"
)

// TarFile is a read-only view of the regular file entries of a tar archive.
//
// The archive is read once by [OpenTarFile]. All accessors return copies of
// the cached data.
type TarFile struct {
	filename   string
	paths      []string
	firmwares  []string
	qemuBinary []string
}

// TarFileFor opens the qemu-system archive for the given architecture and
// host operating system in dir.
func TarFileFor(dir string, arch sys.Arch, hostOS sys.HostOS) (*TarFile, error) {
	name := bundle.QemuSystemArchiveName(arch, hostOS)

	tarFile, err := OpenTarFile(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}

	// Report the archive by its name, as the directory is an environment
	// detail.
	tarFile.filename = name

	return tarFile, nil
}

// OpenTarFile reads all regular file entries of the given archive.
//
// Entry names are normalized by removing a leading "./". No further path
// cleaning is done. The returned error wraps [fs.ErrNotExist] if the file does
// not exist and [ErrMalformedArchive] if the content can not be parsed.
func OpenTarFile(filename string) (*TarFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	paths, err := readRegularPaths(file)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", filename, err)
	}

	tarFile := &TarFile{
		filename: filename,
		paths:    paths,
	}

	for _, path := range paths {
		if firmware, found := strings.CutPrefix(path, bundle.FirmwareDir); found {
			tarFile.firmwares = append(tarFile.firmwares, firmware)
		}

		if strings.HasPrefix(path, bundle.QemuBinaryPath) {
			tarFile.qemuBinary = append(tarFile.qemuBinary, path)
		}
	}

	return tarFile, nil
}

func readRegularPaths(reader io.Reader) ([]string, error) {
	paths := []string{}
	tarReader := tar.NewReader(reader)

	for {
		hdr, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedArchive, err)
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		paths = append(paths, strings.TrimPrefix(hdr.Name, "./"))
	}

	slices.Sort(paths)

	return paths, nil
}

// Filename returns the name the archive was opened with.
func (f *TarFile) Filename() string {
	return f.filename
}

// Paths returns the sorted normalized paths of all regular files.
func (f *TarFile) Paths() []string {
	return slices.Clone(f.paths)
}

// FirmwarePaths returns all paths inside [bundle.FirmwareDir].
func (f *TarFile) FirmwarePaths() []string {
	return fullFirmwarePaths(f.firmwares)
}

// Firmwares returns the paths inside [bundle.FirmwareDir] relative to it.
// Duplicate archive entries are kept.
func (f *TarFile) Firmwares() []string {
	return slices.Clone(f.firmwares)
}

// QemuBinary returns all paths with prefix [bundle.QemuBinaryPath].
func (f *TarFile) QemuBinary() []string {
	return slices.Clone(f.qemuBinary)
}

func fullFirmwarePaths(firmwares []string) []string {
	paths := make([]string, 0, len(firmwares))
	for _, firmware := range firmwares {
		paths = append(paths, bundle.FirmwareDir+firmware)
	}

	return paths
}
