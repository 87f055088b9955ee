// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fetch downloads remote assets like the QEMU source archive and
// firmware images.
package fetch
