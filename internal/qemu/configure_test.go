// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"testing"

	"github.com/aibor/qemu-resources/internal/qemu"
	"github.com/aibor/qemu-resources/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureSpec_Args(t *testing.T) {
	t.Run("linux x86_64", func(t *testing.T) {
		spec := qemu.ConfigureSpec{
			Targets:    []sys.Arch{sys.X8664, sys.AArch64},
			BuildFlags: []string{"--static"},
		}

		args, err := spec.Args()
		require.NoError(t, err)

		require.Len(t, args, 44)
		assert.Equal(t, "--prefix=/tmp/cross-platform-actions", args[0])
		assert.Equal(t, "--disable-auth-pam", args[1])
		assert.Equal(t, "--disable-zstd", args[38])
		assert.Equal(t, []string{
			"--enable-lto",
			"--enable-slirp=git",
			"--enable-tools",
			"--target-list=x86_64-softmmu,aarch64-softmmu",
			"--static",
		}, args[39:])
	})

	t.Run("custom prefix and extra flags", func(t *testing.T) {
		spec := qemu.ConfigureSpec{
			Prefix:     "/opt/qemu",
			Targets:    []sys.Arch{sys.AArch64},
			ExtraFlags: []string{"--cc=clang", "--enable-debug"},
		}

		args, err := spec.Args()
		require.NoError(t, err)

		assert.Equal(t, "--prefix=/opt/qemu", args[0])
		assert.Contains(t, args, "--target-list=aarch64-softmmu")
		assert.Equal(t, []string{"--cc=clang", "--enable-debug"}, args[len(args)-2:])
	})

	t.Run("repeated extra flags from env", func(t *testing.T) {
		extraFlags, err := qemu.ExtraFlagsFromEnv(func(string) string {
			return "--extra-cflags=-O2 --extra-cflags=-g --extra-ldflags=-s"
		})
		require.NoError(t, err)

		spec := qemu.ConfigureSpec{
			Targets:    []sys.Arch{sys.X8664},
			ExtraFlags: extraFlags,
		}

		args, err := spec.Args()
		require.NoError(t, err)

		assert.Equal(t, []string{
			"--extra-cflags=-O2",
			"--extra-cflags=-g",
			"--extra-ldflags=-s",
		}, args[len(args)-3:])
	})

	tests := []struct {
		name        string
		spec        qemu.ConfigureSpec
		expectedErr error
	}{
		{
			name:        "no targets",
			spec:        qemu.ConfigureSpec{},
			expectedErr: qemu.ErrNoTargets,
		},
		{
			name: "re-enabling disabled feature",
			spec: qemu.ConfigureSpec{
				Targets:    []sys.Arch{sys.X8664},
				ExtraFlags: []string{"--enable-kvm"},
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
		{
			name: "duplicate prefix",
			spec: qemu.ConfigureSpec{
				Targets:    []sys.Arch{sys.X8664},
				ExtraFlags: []string{"--prefix=/usr"},
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
		{
			name: "identical repeated extra flag",
			spec: qemu.ConfigureSpec{
				Targets:    []sys.Arch{sys.X8664},
				ExtraFlags: []string{"--extra-ldflags=-s", "--extra-ldflags=-s"},
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
		{
			name: "invalid extra flag",
			spec: qemu.ConfigureSpec{
				Targets:    []sys.Arch{sys.X8664},
				ExtraFlags: []string{"static"},
			},
			expectedErr: qemu.ErrArgumentInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.Args()
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestExtraFlagsFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  []string
		assertErr require.ErrorAssertionFunc
	}{
		{
			name:      "unset",
			assertErr: require.NoError,
		},
		{
			name:      "blank",
			value:     "   ",
			assertErr: require.NoError,
		},
		{
			name:      "quoted",
			value:     `--cc=clang --extra-cflags="-O2 -g"`,
			expected:  []string{"--cc=clang", "--extra-cflags=-O2 -g"},
			assertErr: require.NoError,
		},
		{
			name:      "unterminated quote",
			value:     `--extra-cflags="-O2`,
			assertErr: require.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string {
				if key == qemu.ExtraFlagsEnv {
					return tt.value
				}

				return ""
			}

			actual, err := qemu.ExtraFlagsFromEnv(getenv)
			tt.assertErr(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
