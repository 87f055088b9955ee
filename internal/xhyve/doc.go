// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package xhyve installs xhyve with Homebrew and locates the files bundled
// into the xhyve archive.
package xhyve
