// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bundle assembles the resource archives.
//
// The content of an archive is collected in a [Layout], a virtual file tree
// that maps archive paths to source files on disk. Source files are opened
// only when the archive is written. Any [io/fs.FS] can be written into a tar
// archive with [WriteFS]. Entry names are prefixed with "./" the same way
// "tar -C dir -c ." does it.
package bundle
