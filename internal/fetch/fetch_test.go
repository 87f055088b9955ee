// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aibor/qemu-resources/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/qemu-6.2.0.tar.xz", func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("source"))
	})
	mux.HandleFunc("/mirror/qemu-6.2.0.tar.xz", func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("mirror"))
	})
	mux.HandleFunc("/latest/QEMU_EFI.fd", func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("uefi"))
	})
	mux.HandleFunc("/missing.fd", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.NotFound(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestFetcher_Download(t *testing.T) {
	var requests atomic.Int32

	server := newServer(t, &requests)
	fetcher := &fetch.Fetcher{Client: server.Client()}

	t.Run("success", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "qemu.tar.xz")

		err := fetcher.Download(context.Background(), server.URL+"/qemu-6.2.0.tar.xz", dest)
		require.NoError(t, err)

		content, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "source", string(content))
	})

	t.Run("not found", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "missing.fd")

		err := fetcher.Download(context.Background(), server.URL+"/missing.fd", dest)
		require.ErrorIs(t, err, fetch.ErrUnexpectedStatus)
		assert.NoFileExists(t, dest)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		dest := filepath.Join(t.TempDir(), "qemu.tar.xz")

		err := fetcher.Download(ctx, server.URL+"/qemu-6.2.0.tar.xz", dest)
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, dest)
	})
}

func TestFetcher_Cached(t *testing.T) {
	var requests atomic.Int32

	server := newServer(t, &requests)
	cacheDir := filepath.Join(t.TempDir(), "cache")
	fetcher := &fetch.Fetcher{Client: server.Client(), CacheDir: cacheDir}

	var first string

	for range 2 {
		path, err := fetcher.Cached(context.Background(), server.URL+"/qemu-6.2.0.tar.xz")
		require.NoError(t, err)
		assert.Equal(t, "qemu-6.2.0.tar.xz", filepath.Base(path))
		assert.True(t, strings.HasPrefix(path, cacheDir), "path %s should be in cache dir", path)
		assert.FileExists(t, path)

		if first == "" {
			first = path
		}

		assert.Equal(t, first, path)
	}

	assert.Equal(t, int32(1), requests.Load(), "second call should be served from cache")

	_, err := fetcher.Cached(context.Background(), server.URL+"/missing.fd")
	require.ErrorIs(t, err, fetch.ErrUnexpectedStatus)

	matches, err := filepath.Glob(filepath.Join(cacheDir, "*", "missing.fd*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "no partial download should be left")
}

func TestFetcher_CachedSameName(t *testing.T) {
	var requests atomic.Int32

	server := newServer(t, &requests)
	fetcher := &fetch.Fetcher{
		Client:   server.Client(),
		CacheDir: t.TempDir(),
	}

	upstream, err := fetcher.Cached(context.Background(), server.URL+"/qemu-6.2.0.tar.xz")
	require.NoError(t, err)

	mirror, err := fetcher.Cached(context.Background(), server.URL+"/mirror/qemu-6.2.0.tar.xz")
	require.NoError(t, err)

	assert.NotEqual(t, upstream, mirror, "different urls must not share a cache entry")
	assert.Equal(t, int32(2), requests.Load())

	content, err := os.ReadFile(mirror)
	require.NoError(t, err)
	assert.Equal(t, "mirror", string(content))
}

func TestFetcher_CachedMaxAge(t *testing.T) {
	tests := []struct {
		name             string
		maxAge           time.Duration
		age              time.Duration
		expectedRequests int32
	}{
		{
			name:             "kept forever",
			age:              365 * 24 * time.Hour,
			expectedRequests: 1,
		},
		{
			name:             "fresh",
			maxAge:           time.Hour,
			age:              time.Minute,
			expectedRequests: 1,
		},
		{
			name:             "expired",
			maxAge:           time.Hour,
			age:              2 * time.Hour,
			expectedRequests: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32

			server := newServer(t, &requests)
			fetcher := &fetch.Fetcher{
				Client:   server.Client(),
				CacheDir: t.TempDir(),
				MaxAge:   tt.maxAge,
			}
			url := server.URL + "/latest/QEMU_EFI.fd"

			path, err := fetcher.Cached(context.Background(), url)
			require.NoError(t, err)

			modTime := time.Now().Add(-tt.age)
			require.NoError(t, os.Chtimes(path, modTime, modTime))

			again, err := fetcher.Cached(context.Background(), url)
			require.NoError(t, err)
			assert.Equal(t, path, again)
			assert.Equal(t, tt.expectedRequests, requests.Load())
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expected    string
		expectedErr error
	}{
		{
			name:     "qemu source",
			url:      "https://download.qemu.org/qemu-6.2.0.tar.xz",
			expected: "qemu-6.2.0.tar.xz",
		},
		{
			name:     "linaro",
			url:      "http://releases.linaro.org/components/kernel/uefi-linaro/latest/release/qemu64/QEMU_EFI.fd",
			expected: "QEMU_EFI.fd",
		},
		{
			name:     "query",
			url:      "https://example.com/file.bin?version=1",
			expected: "file.bin",
		},
		{
			name:        "no path",
			url:         "https://example.com",
			expectedErr: fetch.ErrNoFileName,
		},
		{
			name:        "root path",
			url:         "https://example.com/",
			expectedErr: fetch.ErrNoFileName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := fetch.FileName(tt.url)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
