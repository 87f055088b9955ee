// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sys provides host platform detection: the operating system name as
// used in resource archive names and the CPU architecture in QEMU's naming
// scheme.
package sys
