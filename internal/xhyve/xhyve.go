// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package xhyve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/aibor/qemu-resources/internal/bundle"
	"github.com/aibor/qemu-resources/internal/shell"
	"github.com/aibor/qemu-resources/internal/sys"
)

const (
	formula      = "xhyve"
	userbootPath = "share/xhyve/test/userboot.so"
)

// CIEnv is the environment variable set on GitHub Actions runners. The UEFI
// firmware is only bundled there.
const CIEnv = "GITHUB_ACTIONS"

// Installer installs xhyve and collects its files.
type Installer struct {
	Runner shell.Runner

	// LookPath finds executables. [exec.LookPath] if nil.
	LookPath func(file string) (string, error)

	// LookupEnv reads environment variables.
	LookupEnv func(key string) (string, bool)

	// UEFI is the path of the UEFI firmware bundled on CI.
	UEFI string
}

// InstallCommand returns the command installing the latest xhyve.
func InstallCommand() shell.Command {
	return shell.New("brew", "install", "--HEAD", formula)
}

// Install installs xhyve from the latest sources.
func (i *Installer) Install(ctx context.Context) error {
	err := i.Runner.Run(ctx, InstallCommand())
	if err != nil {
		return fmt.Errorf("install xhyve: %w", err)
	}

	return nil
}

// Bundle returns the xhyve archive content for the host.
func (i *Installer) Bundle(ctx context.Context, hostOS sys.HostOS) (bundle.Xhyve, error) {
	lookPath := i.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	binary, err := lookPath(formula)
	if err != nil {
		return bundle.Xhyve{}, fmt.Errorf("find xhyve binary: %w", err)
	}

	userboot, err := i.userboot(ctx)
	if err != nil {
		return bundle.Xhyve{}, err
	}

	spec := bundle.Xhyve{
		HostOS:   hostOS,
		Binary:   binary,
		Userboot: userboot,
	}

	if i.onCI() && i.UEFI != "" {
		err := sys.CheckRegularFile(i.UEFI)
		if err != nil {
			return bundle.Xhyve{}, fmt.Errorf("uefi: %w", err)
		}

		spec.UEFI = i.UEFI
	}

	slog.Debug("xhyve bundle",
		slog.String("binary", spec.Binary),
		slog.String("userboot", spec.Userboot),
		slog.String("uefi", spec.UEFI))

	return spec, nil
}

func (i *Installer) onCI() bool {
	if i.LookupEnv == nil {
		return false
	}

	_, set := i.LookupEnv(CIEnv)

	return set
}

func (i *Installer) userboot(ctx context.Context) (string, error) {
	cellar, err := i.Runner.Output(ctx, shell.New("brew", "--cellar", formula))
	if err != nil {
		return "", fmt.Errorf("xhyve cellar: %w", err)
	}

	info, err := i.Runner.Output(ctx, shell.New("brew", "info", formula, "--json"))
	if err != nil {
		return "", fmt.Errorf("xhyve info: %w", err)
	}

	version, err := InstalledVersion([]byte(info))
	if err != nil {
		return "", err
	}

	return filepath.Join(cellar, version, userbootPath), nil
}

type formulaInfo struct {
	Installed []struct {
		Version string `json:"version"`
	} `json:"installed"`
}

// InstalledVersion returns the installed version from the output of
// "brew info --json". If more than one version is installed, the last one
// is used.
func InstalledVersion(info []byte) (string, error) {
	var formulas []formulaInfo

	err := json.Unmarshal(info, &formulas)
	if err != nil {
		return "", fmt.Errorf("parse brew info: %w", err)
	}

	version := ""

	for _, entry := range formulas {
		for _, installed := range entry.Installed {
			if installed.Version != "" {
				version = installed.Version
			}
		}
	}

	if version == "" {
		return "", ErrNotInstalled
	}

	return version, nil
}
