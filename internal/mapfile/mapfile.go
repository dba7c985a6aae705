// Package mapfile gives read-only access to a whole file as a byte
// slice. On unix systems the file is memory mapped.
package mapfile

import (
	"fmt"
	"os"
)

// File is an open read-only view of a file's contents.
type File struct {
	data   []byte
	mapped bool
}

// Open maps path into memory, or reads it where mapping is unavailable.
// Empty files are never mapped.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	if info.Size() == 0 {
		return &File{data: []byte{}}, nil
	}
	if int64(int(info.Size())) != info.Size() {
		return nil, fmt.Errorf("%s: file too large (%d bytes)", path, info.Size())
	}

	data, mapped, err := load(f, int(info.Size()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{data: data, mapped: mapped}, nil
}

// Bytes returns the file contents. The slice is invalid after Close and
// must not be written to.
func (f *File) Bytes() []byte { return f.data }

// Mapped reports whether the contents are memory mapped.
func (f *File) Mapped() bool { return f.mapped }

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	data, mapped := f.data, f.mapped
	f.data, f.mapped = nil, false
	if !mapped {
		return nil
	}
	return unmap(data)
}
