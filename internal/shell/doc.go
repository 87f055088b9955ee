// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package shell runs external commands like package managers and the QEMU
// build system.
//
// All commands are run through a [Runner], so callers can replace the real
// [Exec] with a [MockRunner] in tests.
package shell
