// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const cacheDirName = "qemu-resources"

// Fetcher downloads files over HTTP.
type Fetcher struct {
	// Client used for requests. [http.DefaultClient] if nil.
	Client *http.Client

	// CacheDir downloads are kept in by [Fetcher.Cached]. If empty, a
	// directory in the user's XDG cache home is used.
	CacheDir string

	// MaxAge after which a cached file is downloaded again. Zero keeps
	// cached files forever.
	MaxAge time.Duration
}

func (f *Fetcher) client() *http.Client {
	if f.Client == nil {
		return http.DefaultClient
	}

	return f.Client
}

// cachePath returns the path for the cached copy of rawURL. Entries are
// kept in a directory per URL, so files with the same name from different
// locations do not collide.
func (f *Fetcher) cachePath(rawURL, name string) (string, error) {
	relPath := filepath.Join(cacheKey(rawURL), name)

	if f.CacheDir == "" {
		path, err := xdg.CacheFile(filepath.Join(cacheDirName, relPath))
		if err != nil {
			return "", fmt.Errorf("cache file: %w", err)
		}

		return path, nil
	}

	path := filepath.Join(f.CacheDir, relPath)

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	return path, nil
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:8])
}

func (f *Fetcher) fresh(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	return f.MaxAge <= 0 || time.Since(info.ModTime()) < f.MaxAge
}

// Download writes the body of the resource at rawURL into dest. Partially
// written files are removed on failure.
func (f *Fetcher) Download(ctx context.Context, rawURL, dest string) error {
	slog.Info("Download", slog.String("url", rawURL), slog.String("dest", dest))

	body, err := f.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer body.Close()

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer file.Close()

	_, err = io.Copy(file, body)
	if err == nil {
		err = file.Close()
	}

	if err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("download %s: %w", rawURL, err)
	}

	return nil
}

// Cached returns the path of the cached copy of the resource at rawURL. It is
// downloaded first if not present yet or older than [Fetcher.MaxAge].
func (f *Fetcher) Cached(ctx context.Context, rawURL string) (string, error) {
	name, err := FileName(rawURL)
	if err != nil {
		return "", err
	}

	path, err := f.cachePath(rawURL, name)
	if err != nil {
		return "", err
	}

	if f.fresh(path) {
		slog.Debug("Use cached file", slog.String("path", path))
		return path, nil
	}

	// Download into a temporary file first, so an interrupted download is
	// never taken for a complete one.
	tmpPath := path + ".part"

	err = f.Download(ctx, rawURL, tmpPath)
	if err != nil {
		return "", err
	}

	err = os.Rename(tmpPath, path)
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("move into cache: %w", err)
	}

	return path, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s: %s", ErrUnexpectedStatus, rawURL, resp.Status)
	}

	return resp.Body, nil
}

// FileName returns the last path element of the URL.
func FileName(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return "", fmt.Errorf("%w: %s", ErrNoFileName, rawURL)
	}

	return name, nil
}
