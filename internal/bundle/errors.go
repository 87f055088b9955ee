// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"errors"
	"io/fs"
)

var (
	// ErrFileNotExist is returned if a path that is looked up does not exist.
	ErrFileNotExist = fs.ErrNotExist

	// ErrFileExist is returned if a path is added that is already present.
	ErrFileExist = fs.ErrExist

	// ErrFileInvalid is returned if a path is invalid for the requested
	// operation.
	ErrFileInvalid = fs.ErrInvalid

	// ErrFileNotDir is returned if a file exists but is not a directory.
	ErrFileNotDir = errors.New("not a directory")

	// ErrNotRegularFile is returned if a source is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrUnsupportedFileType is returned if a file of a type other than
	// regular file or directory should be written into an archive.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
