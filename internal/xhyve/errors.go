// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package xhyve

import "errors"

// ErrNotInstalled is returned if Homebrew does not report an installed
// version of xhyve.
var ErrNotInstalled = errors.New("xhyve not installed")
