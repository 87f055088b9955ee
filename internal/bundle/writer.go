// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"fmt"
	"io/fs"
)

// Writer defines the archive writer interface.
type Writer interface {
	WriteDirectory(path string) error
	WriteRegular(path string, source fs.File) error
}

// WriteFS writes all directories and regular files of the given [fs.FS] into
// the given [Writer], in lexical order.
//
// Other file types, like symbolic links, are rejected with
// [ErrUnsupportedFileType].
func WriteFS(fsys fs.FS, writer Writer) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error { //nolint:wrapcheck
		if err != nil {
			return err
		}

		switch {
		case entry.IsDir():
			return writer.WriteDirectory(path)
		case entry.Type().IsRegular():
			return writeRegular(fsys, path, writer)
		default:
			return &PathError{Op: "write", Path: path, Err: ErrUnsupportedFileType}
		}
	})
}

func writeRegular(fsys fs.FS, path string, writer Writer) error {
	source, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	return writer.WriteRegular(path, source)
}
