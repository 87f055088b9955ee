// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"golang.org/x/sync/errgroup"
)

// Archive is a named archive and its content.
type Archive struct {
	Name   string
	Layout *Layout
}

// Write writes the archive as tar file into dir and returns the path of the
// file. The file is removed if writing fails.
func (a Archive) Write(dir string) (string, error) {
	path := filepath.Join(dir, a.Name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer file.Close()

	err = a.writeTo(file)
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write archive %s: %w", a.Name, err)
	}

	return path, nil
}

func (a Archive) writeTo(file *os.File) error {
	writer := NewTarWriter(file)

	err := WriteFS(a.Layout, writer)
	if err != nil {
		return err
	}

	err = writer.Close()
	if err != nil {
		return err
	}

	return file.Close() //nolint:wrapcheck
}

// WriteAll writes all archives concurrently into dir.
//
// It stops starting new archives once the context is done or any archive
// failed and returns the first error.
func WriteAll(ctx context.Context, dir string, archives ...Archive) error {
	group, ctx := errgroup.WithContext(ctx)

	for _, archive := range archives {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}

			path, err := archive.Write(dir)
			if err != nil {
				return err
			}

			logArchive(path)

			return nil
		})
	}

	return group.Wait() //nolint:wrapcheck
}

func logArchive(path string) {
	attrs := []any{slog.String("path", path)}

	info, err := os.Stat(path)
	if err == nil {
		attrs = append(attrs, slog.String("size", units.HumanSize(float64(info.Size()))))
	}

	slog.Info("Archive written", attrs...)
}
