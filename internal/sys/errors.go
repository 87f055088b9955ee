// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import "errors"

var (
	// ErrEmptyPath is returned if an empty path is given.
	ErrEmptyPath = errors.New("path must not be empty")

	// ErrArchNotSupported is returned if the requested architecture is not
	// supported.
	ErrArchNotSupported = errors.New("architecture not supported")

	// ErrUnsupportedPlatform is returned if the host operating system is
	// not supported.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNotDir is returned if a path does not point to a directory.
	ErrNotDir = errors.New("not a directory")

	// ErrNotRegularFile is returned if a path does not point to a regular
	// file.
	ErrNotRegularFile = errors.New("not a regular file")
)
