// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"time"
)

const entryPrefix = "./"

var _ Writer = (*TarWriter)(nil)

// TarWriter implements [Writer] for [tar.Writer].
type TarWriter struct {
	tarWriter *tar.Writer
}

// NewTarWriter creates a new archive writer.
func NewTarWriter(w io.Writer) *TarWriter {
	return &TarWriter{tar.NewWriter(w)}
}

// Close writes the tar footer and flushes the data to the underlying
// [io.Writer].
func (w *TarWriter) Close() error {
	err := w.tarWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func (w *TarWriter) writeHeader(hdr *tar.Header) error {
	if err := w.tarWriter.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header for %s: %w", hdr.Name, err)
	}

	return nil
}

// WriteDirectory adds a directory entry for the given path to the archive.
func (w *TarWriter) WriteDirectory(path string) error {
	name := entryPrefix
	if path != "." {
		name += path + "/"
	}

	header := &tar.Header{
		Typeflag: tar.TypeDir,
		Name:     name,
		Mode:     int64(dirMode.Perm()),
		ModTime:  time.Unix(0, 0),
	}

	return w.writeHeader(header)
}

// WriteRegular copies the source file into the archive.
func (w *TarWriter) WriteRegular(path string, source fs.File) error {
	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("read info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     entryPrefix + path,
		Size:     info.Size(),
		Mode:     int64(info.Mode().Perm()),
		ModTime:  info.ModTime().Truncate(time.Second),
	}

	if err := w.writeHeader(header); err != nil {
		return err
	}

	if _, err := io.Copy(w.tarWriter, source); err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}
