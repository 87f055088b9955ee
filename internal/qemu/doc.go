// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu fetches, configures and builds QEMU from source and knows
// which firmware files each system emulator needs.
package qemu
