// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"io/fs"
	"os"
	"path"
	"strings"
)

var _ fs.FS = (*Layout)(nil)

// Layout is a virtual file tree of directories and regular files that
// describes the content of an archive.
//
// Regular files are not copied into the tree. Instead, an archive path is
// mapped to a function opening the source. Parent directories are created
// implicitly.
type Layout struct {
	root directory
}

// NewLayout creates a new empty [Layout].
func NewLayout() *Layout {
	return &Layout{
		root: make(directory),
	}
}

// Open implements [fs.FS].
func (l *Layout) Open(name string) (fs.File, error) {
	node, err := l.find(name)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	file, err := node.open(name)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	return file, nil
}

// Add adds a regular file at the given path that is read with openFn once
// the file is opened.
func (l *Layout) Add(name string, openFn FileOpenFunc) error {
	if openFn == nil || name == "." || !fs.ValidPath(name) {
		return &PathError{Op: "add", Path: name, Err: ErrFileInvalid}
	}

	dirName, fileName := path.Split(name)

	parent, err := l.mkdirAll(strings.TrimSuffix(dirName, "/"))
	if err != nil {
		return &PathError{Op: "add", Path: name, Err: err}
	}

	if _, exists := parent[fileName]; exists {
		return &PathError{Op: "add", Path: name, Err: ErrFileExist}
	}

	parent[fileName] = regularFile(openFn)

	return nil
}

// AddFile adds a regular file at the given path that is copied from the
// source path on the host.
func (l *Layout) AddFile(name, source string) error {
	return l.Add(name, func() (fs.File, error) {
		return os.Open(source)
	})
}

// AddFiles adds all source files into dir using their base names.
func (l *Layout) AddFiles(dir string, sources ...string) error {
	for _, source := range sources {
		err := l.AddFile(path.Join(dir, path.Base(source)), source)
		if err != nil {
			return err
		}
	}

	return nil
}

func (l *Layout) mkdirAll(name string) (directory, error) {
	current := l.root

	if name == "" || name == "." {
		return current, nil
	}

	for element := range strings.SplitSeq(name, "/") {
		next, exists := current[element]
		if !exists {
			next = make(directory)
			current[element] = next
		}

		dir, isDir := next.(directory)
		if !isDir {
			return nil, ErrFileNotDir
		}

		current = dir
	}

	return current, nil
}

//nolint:ireturn
func (l *Layout) find(name string) (node, error) {
	if name == "." {
		return l.root, nil
	}

	if !fs.ValidPath(name) {
		return nil, ErrFileInvalid
	}

	var current node = l.root

	for element := range strings.SplitSeq(name, "/") {
		dir, isDir := current.(directory)
		if !isDir {
			return nil, ErrFileNotExist
		}

		next, exists := dir[element]
		if !exists {
			return nil, ErrFileNotExist
		}

		current = next
	}

	return current, nil
}
