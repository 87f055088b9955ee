// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"
)

const (
	edk2AArch64Name = "edk2-aarch64-code.fd"
	bzip2Ext        = ".bz2"
)

// PrepareEDK2UEFI writes the aarch64 EDK2 firmware from the given firmware
// directory into dest.
//
// The source tree ships the image bzip2 compressed. If the compressed file
// is not present, the uncompressed image is used. The image is padded with
// zero bytes to the flash size, which are cut off.
func PrepareEDK2UEFI(firmwareDir, dest string) error {
	source := filepath.Join(firmwareDir, edk2AArch64Name)

	image, err := readEDK2Image(source)
	if err != nil {
		return err
	}

	trimmed, err := trimTrailingZeros(image)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	err = os.WriteFile(dest, trimmed, 0o644)
	if err != nil {
		return fmt.Errorf("write uefi image: %w", err)
	}

	slog.Debug("Prepared UEFI image",
		slog.String("source", source),
		slog.String("dest", dest),
		slog.Int("size", len(trimmed)))

	return nil
}

func readEDK2Image(source string) ([]byte, error) {
	compressed, err := os.Open(source + bzip2Ext)
	if errors.Is(err, fs.ErrNotExist) {
		image, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read uefi image: %w", err)
		}

		return image, nil
	}

	if err != nil {
		return nil, fmt.Errorf("open compressed uefi image: %w", err)
	}
	defer compressed.Close()

	reader, err := bzip2.NewReader(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("bzip2 reader: %w", err)
	}
	defer reader.Close()

	image, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompress uefi image: %w", err)
	}

	return image, nil
}

// trimTrailingZeros cuts the image right after its last non-zero byte, so
// that byte is kept. The shell based build cut at the offset of that byte
// and lost it.
func trimTrailingZeros(image []byte) ([]byte, error) {
	trimmed := bytes.TrimRight(image, "\x00")
	if len(trimmed) == 0 {
		return nil, ErrFirmwareEmpty
	}

	return trimmed, nil
}
