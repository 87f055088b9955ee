// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"io"
	"io/fs"
	"maps"
	"path"
	"slices"
	"time"
)

const dirMode = fs.ModeDir | 0o755

// FileOpenFunc returns an open [fs.File] or an error if opening fails.
type FileOpenFunc func() (fs.File, error)

type node interface {
	open(name string) (fs.File, error)
}

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*dirEntry)(nil)
)

type fileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (i *fileInfo) Name() string       { return i.name }
func (i *fileInfo) Size() int64        { return i.size }
func (i *fileInfo) Mode() fs.FileMode  { return i.mode }
func (i *fileInfo) ModTime() time.Time { return i.modTime }
func (i *fileInfo) IsDir() bool        { return i.mode.IsDir() }
func (*fileInfo) Sys() any             { return nil }

type dirEntry struct {
	name string
	node node
}

func (e *dirEntry) Name() string { return e.name }

func (e *dirEntry) IsDir() bool {
	_, isDir := e.node.(directory)
	return isDir
}

func (e *dirEntry) Type() fs.FileMode {
	if e.IsDir() {
		return fs.ModeDir
	}

	return 0
}

func (e *dirEntry) Info() (fs.FileInfo, error) {
	file, err := e.node.open(e.name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return file.Stat() //nolint:wrapcheck
}

var (
	_ fs.File        = (*openFile)(nil)
	_ fs.ReadDirFile = (*openFile)(nil)
)

type openFile struct {
	info    fileInfo
	reader  io.ReadCloser
	entries []fs.DirEntry
	offset  int
}

func (f *openFile) Stat() (fs.FileInfo, error) {
	return &f.info, nil
}

func (f *openFile) Read(b []byte) (int, error) {
	if f.reader == nil {
		return 0, ErrFileInvalid
	}

	return f.reader.Read(b) //nolint:wrapcheck
}

func (f *openFile) Close() error {
	if f.reader == nil {
		return nil
	}

	return f.reader.Close() //nolint:wrapcheck
}

func (f *openFile) ReadDir(count int) ([]fs.DirEntry, error) {
	if !f.info.IsDir() {
		return nil, ErrFileNotDir
	}

	start := f.offset
	end := len(f.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	f.offset = end

	return f.entries[start:end], nil
}

type regularFile FileOpenFunc

// open opens the source file. The archive entry takes permissions, size and
// modification time from the source.
func (f regularFile) open(name string) (fs.File, error) {
	file, err := f()
	if err != nil {
		return nil, err
	}

	sourceInfo, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err //nolint:wrapcheck
	}

	if !sourceInfo.Mode().IsRegular() {
		_ = file.Close()
		return nil, ErrNotRegularFile
	}

	openFile := &openFile{
		info: fileInfo{
			name:    path.Base(name),
			size:    sourceInfo.Size(),
			mode:    sourceInfo.Mode().Perm(),
			modTime: sourceInfo.ModTime(),
		},
		reader: file,
	}

	return openFile, nil
}

type directory map[string]node

func (d directory) open(name string) (fs.File, error) {
	entries := make([]fs.DirEntry, 0, len(d))

	for _, entryName := range slices.Sorted(maps.Keys(d)) {
		entries = append(entries, &dirEntry{
			name: entryName,
			node: d[entryName],
		})
	}

	openFile := &openFile{
		info: fileInfo{
			name:    path.Base(name),
			mode:    dirMode,
			modTime: time.Unix(0, 0),
		},
		entries: entries,
	}

	return openFile, nil
}
