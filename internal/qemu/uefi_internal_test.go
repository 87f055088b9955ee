// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimTrailingZeros(t *testing.T) {
	tests := []struct {
		name        string
		image       []byte
		expected    []byte
		expectedErr error
	}{
		{
			name:     "last non-zero byte kept",
			image:    []byte{0x01, 0x02, 0x00, 0x00},
			expected: []byte{0x01, 0x02},
		},
		{
			name:     "inner zeros kept",
			image:    []byte{0x01, 0x00, 0x00, 0x03, 0x00},
			expected: []byte{0x01, 0x00, 0x00, 0x03},
		},
		{
			name:     "no padding",
			image:    []byte{0xff},
			expected: []byte{0xff},
		},
		{
			name:        "only zeros",
			image:       make([]byte, 8),
			expectedErr: ErrFirmwareEmpty,
		},
		{
			name:        "empty",
			expectedErr: ErrFirmwareEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := trimTrailingZeros(tt.image)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
