// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ci

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aibor/qemu-resources/internal/bundle"
	"github.com/aibor/qemu-resources/internal/host"
	"github.com/aibor/qemu-resources/internal/qemu"
	"github.com/aibor/qemu-resources/internal/shell"
	"github.com/aibor/qemu-resources/internal/sys"
	"github.com/aibor/qemu-resources/internal/xhyve"
)

// Runner runs the resource build.
type Runner struct {
	Config Config

	Shell      shell.Runner
	Downloader qemu.Downloader

	// Xhyve installs xhyve on hosts that bundle it. If nil, an installer
	// using Shell and the process environment is used. It bundles the
	// uefi.fd placed in the current directory by the CI workflow.
	Xhyve *xhyve.Installer
}

// Run runs all steps and writes the archives into the output directory.
func (r *Runner) Run(ctx context.Context) error {
	profile, err := host.Lookup(r.Config.HostOS, r.Config.Arch)
	if err != nil {
		return err
	}

	for _, dir := range []string{r.Config.WorkDir, r.Config.OutputDir} {
		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}

	if !r.Config.SkipInstall {
		err := r.Shell.Run(ctx, profile.Install)
		if err != nil {
			return fmt.Errorf("install prerequisites: %w", err)
		}
	}

	build, err := r.build(ctx, profile)
	if err != nil {
		return err
	}

	archives := []bundle.Archive{}

	resources, err := bundle.Resources(profile.OS, build.QemuImg())
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}

	archives = append(archives, resources)

	if profile.Xhyve {
		archive, err := r.xhyveArchive(ctx, profile)
		if err != nil {
			return err
		}

		archives = append(archives, archive)
	}

	for _, arch := range profile.Architectures {
		archive, err := r.qemuSystemArchive(ctx, profile, build, arch)
		if err != nil {
			return fmt.Errorf("%s: %w", arch.QemuSystem(), err)
		}

		archives = append(archives, archive)
	}

	err = bundle.WriteAll(ctx, r.Config.OutputDir, archives...)
	if err != nil {
		return fmt.Errorf("write archives: %w", err)
	}

	slog.Info("Resources built",
		slog.String("output", r.Config.OutputDir),
		slog.Int("archives", len(archives)))

	return nil
}

func (r *Runner) build(ctx context.Context, profile host.Profile) (qemu.Build, error) {
	source := qemu.Source{
		Version: r.Config.QemuVersion,
		URL:     r.Config.QemuURL,
		WorkDir: r.Config.WorkDir,
	}

	err := source.Fetch(ctx, r.Downloader)
	if err != nil {
		return qemu.Build{}, fmt.Errorf("fetch: %w", err)
	}

	ldFlags, err := profile.LDFlags(ctx, r.Shell)
	if err != nil {
		return qemu.Build{}, fmt.Errorf("ldflags: %w", err)
	}

	build := qemu.Build{
		SourceDir: source.Dir(),
		Configure: qemu.ConfigureSpec{
			Targets:    profile.Architectures,
			BuildFlags: profile.BuildFlags,
			ExtraFlags: r.Config.ExtraConfigureFlags,
		},
		LDFlags: ldFlags,
		Jobs:    r.Config.Jobs,
	}

	err = build.Run(ctx, r.Shell)
	if err != nil {
		return qemu.Build{}, err
	}

	return build, nil
}

func (r *Runner) xhyveInstaller() *xhyve.Installer {
	if r.Xhyve != nil {
		return r.Xhyve
	}

	return &xhyve.Installer{
		Runner:    r.Shell,
		LookupEnv: os.LookupEnv,
		UEFI:      qemu.UEFIName,
	}
}

func (r *Runner) xhyveArchive(ctx context.Context, profile host.Profile) (bundle.Archive, error) {
	installer := r.xhyveInstaller()

	err := installer.Install(ctx)
	if err != nil {
		return bundle.Archive{}, err
	}

	spec, err := installer.Bundle(ctx, profile.OS)
	if err != nil {
		return bundle.Archive{}, fmt.Errorf("xhyve: %w", err)
	}

	archive, err := spec.Archive()
	if err != nil {
		return bundle.Archive{}, fmt.Errorf("xhyve: %w", err)
	}

	return archive, nil
}

func (r *Runner) qemuSystemArchive(
	ctx context.Context,
	profile host.Profile,
	build qemu.Build,
	arch sys.Arch,
) (bundle.Archive, error) {
	target, err := qemu.TargetFor(arch)
	if err != nil {
		return bundle.Archive{}, err
	}

	extras := map[string]string{}

	switch target.UEFI {
	case qemu.UEFIFromEDK2:
		dest := filepath.Join(r.Config.WorkDir, arch.QemuSystem()+"-"+qemu.UEFIName)

		err := qemu.PrepareEDK2UEFI(build.FirmwareDir(), dest)
		if err != nil {
			return bundle.Archive{}, fmt.Errorf("uefi: %w", err)
		}

		extras[qemu.UEFIName] = dest
	case qemu.UEFIFromHost:
		if profile.UEFISource != "" {
			extras[qemu.UEFIName] = profile.UEFISource
		}
	}

	if target.LinaroUEFI {
		path, err := r.Downloader.Cached(ctx, r.Config.LinaroUEFIURL)
		if err != nil {
			return bundle.Archive{}, fmt.Errorf("linaro uefi: %w", err)
		}

		extras[qemu.LinaroUEFIName] = path
	}

	spec := bundle.QemuSystem{
		Arch:              arch,
		HostOS:            profile.OS,
		Binary:            build.Binary(arch),
		FirmwareSourceDir: build.FirmwareDir(),
		Firmwares:         target.Firmwares,
		ExtraFirmwares:    extras,
	}

	return spec.Archive()
}
