// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aibor/qemu-resources/internal/sys"
	"github.com/mholt/archiver/v3"
)

// DefaultVersion is the QEMU version that is built by default.
const DefaultVersion = "6.2.0"

// SourceDirName is the name of the symbolic link pointing to the unpacked
// source tree.
const SourceDirName = "qemu"

// Downloader provides remote files.
type Downloader interface {
	// Cached returns the path to a local copy of the file at url.
	Cached(ctx context.Context, url string) (string, error)
}

// SourceURL returns the download URL of the source archive for the given
// QEMU version.
func SourceURL(version string) string {
	return "https://download.qemu.org/qemu-" + version + ".tar.xz"
}

// Source describes the QEMU source tree.
type Source struct {
	Version string

	// URL of the source archive. [SourceURL] of the version if empty.
	URL string

	// WorkDir the source is unpacked in.
	WorkDir string
}

func (s Source) url() string {
	if s.URL == "" {
		return SourceURL(s.Version)
	}

	return s.URL
}

func (s Source) versionDirName() string {
	return "qemu-" + s.Version
}

// Dir returns the path of the source tree.
func (s Source) Dir() string {
	return filepath.Join(s.WorkDir, SourceDirName)
}

// Fetch downloads and unpacks the source archive into the work directory and
// points the [SourceDirName] link to it. A previously unpacked tree of the
// same version is replaced.
func (s Source) Fetch(ctx context.Context, downloader Downloader) error {
	archive, err := downloader.Cached(ctx, s.url())
	if err != nil {
		return fmt.Errorf("download source: %w", err)
	}

	unpacked := filepath.Join(s.WorkDir, s.versionDirName())

	err = os.RemoveAll(unpacked)
	if err != nil {
		return fmt.Errorf("remove old source: %w", err)
	}

	slog.Info("Unpack source",
		slog.String("archive", archive),
		slog.String("dest", s.WorkDir))

	err = archiver.Unarchive(archive, s.WorkDir)
	if err != nil {
		return fmt.Errorf("unpack source: %w", err)
	}

	info, err := os.Stat(unpacked)
	if err != nil {
		return fmt.Errorf("unpacked source: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("unpacked source: %w: %s", sys.ErrNotDir, unpacked)
	}

	link := s.Dir()

	err = os.RemoveAll(link)
	if err != nil {
		return fmt.Errorf("remove source link: %w", err)
	}

	err = os.Symlink(s.versionDirName(), link)
	if err != nil {
		return fmt.Errorf("link source: %w", err)
	}

	return nil
}
