// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/magefile/mage/target"
)

const pkg = "github.com/aibor/qemu-resources/cmd/qemu-resources"

var env map[string]string

func init() {
	env = make(map[string]string)

	gobin, exists := os.LookupEnv("GOBIN")
	if !exists {
		gobin = "./gobin"
	}

	if gobin != "" {
		p, err := filepath.Abs(gobin)
		if err == nil {
			gobin = p
		}
	}

	env["GOBIN"] = gobin
}

func outputDir() string {
	dir, exists := os.LookupEnv("QEMU_RESOURCES_OUTPUT_DIR")
	if !exists {
		return "."
	}

	return dir
}

// Install qemu-resources to gobin directory.
func Install() error {
	path := filepath.Join(env["GOBIN"], "qemu-resources")

	mod, err := target.Dir(path, "cmd", "internal", "go.mod")
	if err != nil {
		return err
	}

	if !mod {
		return nil
	}

	return sh.RunWith(env, "go", "install", pkg)
}

// Build QEMU and write the resource archives for the host.
func Build() error {
	mg.Deps(Install)

	return sh.RunWithV(
		env,
		filepath.Join(env["GOBIN"], "qemu-resources"),
		"-output-dir", outputDir(),
	)
}

// Validate the structure of the qemu-system archives.
func Validate() error {
	dir, err := filepath.Abs(outputDir())
	if err != nil {
		return err
	}

	args := []string{
		"test",
		"-v",
		"-count", "1",
		"-tags", "resources",
		"./internal/validate",
		"-resources-dir", dir,
	}

	fmt.Printf("go args: %s\n", args)

	return sh.RunWithV(env, "go", args...)
}

// Remove volatile files.
func Clean() error {
	for _, path := range []string{env["GOBIN"], "work"} {
		err := sh.Rm(path)
		if err != nil {
			return err
		}
	}

	return nil
}
