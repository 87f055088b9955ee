// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package host

import "errors"

// ErrNoProfile is returned if no [Profile] exists for a host.
var ErrNoProfile = errors.New("no profile for host")
