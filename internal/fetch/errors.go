// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fetch

import "errors"

var (
	// ErrUnexpectedStatus is returned if the server does not respond with
	// status 200.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrNoFileName is returned if no file name can be derived from a URL.
	ErrNoFileName = errors.New("no file name in url")
)
