// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"
	"runtime"
)

// HostOS is the operating system name used in resource archive names.
type HostOS string

// Supported host operating systems.
const (
	MacOS HostOS = "macos"
	Linux HostOS = "linux"
)

func (o HostOS) String() string {
	return string(o)
}

// HostOSFor returns the [HostOS] for the given Go operating system name.
//
// It returns [ErrUnsupportedPlatform] for anything but darwin and linux.
func HostOSFor(goos string) (HostOS, error) {
	switch goos {
	case "darwin":
		return MacOS, nil
	case "linux":
		return Linux, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// CurrentHostOS returns the [HostOS] of the running platform.
func CurrentHostOS() (HostOS, error) {
	return HostOSFor(runtime.GOOS)
}
