// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package host provides the build settings that differ between the
// supported build hosts.
//
// A [Profile] is looked up by host operating system and CPU architecture. It
// names the emulator targets built on the host, the package manager command
// installing the build prerequisites and the flags for configuring and
// linking QEMU.
package host
