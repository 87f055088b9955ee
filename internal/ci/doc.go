// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ci runs the complete resource build on a CI host: install the
// build prerequisites, fetch and build QEMU, and write the archives.
package ci
