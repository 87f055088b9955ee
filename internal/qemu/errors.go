// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "errors"

var (
	// ErrArgumentCollision is returned if two [Argument]s are considered equal.
	ErrArgumentCollision = errors.New("colliding args")

	// ErrArgumentInvalid is returned if a configure argument can not be
	// parsed.
	ErrArgumentInvalid = errors.New("invalid argument")

	// ErrNoTargets is returned if QEMU should be configured without any
	// target.
	ErrNoTargets = errors.New("no targets")

	// ErrUnknownTarget is returned if no [Target] exists for an
	// architecture.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrFirmwareEmpty is returned if a firmware image contains only zero
	// bytes.
	ErrFirmwareEmpty = errors.New("firmware image is empty")
)
