// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/aibor/qemu-resources/internal/bundle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWriteFS(t *testing.T) {
	tests := []struct {
		name        string
		fsys        fstest.MapFS
		prepare     func(*MockWriter)
		expectedErr error
	}{
		{
			name: "directories and regular files",
			fsys: fstest.MapFS{
				"bin/qemu":             {Data: []byte("qemu"), Mode: 0o755},
				"share/qemu/uefi.fd":   {Data: []byte("uefi")},
				"share/qemu/bios.bin":  {Data: []byte("bios")},
				"share/qemu/empty.rom": {},
			},
			prepare: func(w *MockWriter) {
				w.On("WriteDirectory", ".").Return(nil).Once()
				w.On("WriteDirectory", "bin").Return(nil).Once()
				w.On("WriteRegular", "bin/qemu", mock.Anything).Return(nil).Once()
				w.On("WriteDirectory", "share").Return(nil).Once()
				w.On("WriteDirectory", "share/qemu").Return(nil).Once()
				w.On("WriteRegular", "share/qemu/bios.bin", mock.Anything).Return(nil).Once()
				w.On("WriteRegular", "share/qemu/empty.rom", mock.Anything).Return(nil).Once()
				w.On("WriteRegular", "share/qemu/uefi.fd", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "symlink",
			fsys: fstest.MapFS{
				"bin/qemu": {Data: []byte("qemu-system-x86_64"), Mode: fs.ModeSymlink},
			},
			prepare: func(w *MockWriter) {
				w.On("WriteDirectory", ".").Return(nil).Once()
				w.On("WriteDirectory", "bin").Return(nil).Once()
			},
			expectedErr: bundle.ErrUnsupportedFileType,
		},
		{
			name: "writer fails",
			fsys: fstest.MapFS{
				"bin/qemu": {Data: []byte("qemu")},
			},
			prepare: func(w *MockWriter) {
				w.On("WriteDirectory", ".").Return(nil).Once()
				w.On("WriteDirectory", "bin").Return(nil).Once()
				w.On("WriteRegular", "bin/qemu", mock.Anything).Return(assert.AnError).Once()
			},
			expectedErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &MockWriter{}
			tt.prepare(writer)

			err := bundle.WriteFS(tt.fsys, writer)
			require.ErrorIs(t, err, tt.expectedErr)

			writer.AssertExpectations(t)
		})
	}
}
