// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import "errors"

// ErrMalformedArchive is returned if an archive can not be parsed as tar
// archive.
var ErrMalformedArchive = errors.New("malformed archive")
