// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle_test

import (
	"archive/tar"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteDirectory(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockWriter) WriteRegular(path string, source fs.File) error {
	return m.Called(path, source).Error(0)
}

// writeSourceFile creates a file with the given content in dir and returns
// its path.
func writeSourceFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o644))

	return path
}

type tarEntry struct {
	Typeflag byte
	Mode     int64
	Body     string
}

// readArchive returns all entries of the tar archive at path keyed by name.
func readArchive(tb testing.TB, path string) (map[string]tarEntry, []string) {
	tb.Helper()

	file, err := os.Open(path)
	require.NoError(tb, err)

	defer file.Close()

	entries := map[string]tarEntry{}
	names := []string{}
	reader := tar.NewReader(file)

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		require.NoError(tb, err)

		body, err := io.ReadAll(reader)
		require.NoError(tb, err)

		entries[hdr.Name] = tarEntry{
			Typeflag: hdr.Typeflag,
			Mode:     hdr.Mode,
			Body:     string(body),
		}
		names = append(names, hdr.Name)
	}

	return entries, names
}
