package core

import (
	"io"
	"os"
	"path/filepath"
)

// File is the handle a buffer reads from and saves to.
type File interface {
	io.ReadWriteSeeker
	io.Closer
	Truncate(size int64) error
}

// FileOpener opens path for reading and writing.
type FileOpener func(path string) (File, error)

// OpenFile is the FileOpener backed by the local file system. It never creates
// the file; a missing path fails with an error matching fs.ErrNotExist.
func OpenFile(path string) (File, error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CreateFile opens path for reading and writing, creating it if needed. It is
// used when a buffer is first saved.
func CreateFile(path string) (File, error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// readFile returns the whole file from the start.
func readFile(f File) (string, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", wrapErr(ErrFileSeekFailed, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", wrapErr(ErrFileReadFailed, err)
	}

	return string(data), nil
}

// writeFile replaces the file's contents with text.
func writeFile(f File, text string) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return wrapErr(ErrFileSeekFailed, err)
	}
	if err := f.Truncate(0); err != nil {
		return wrapErr(ErrFileWriteFailed, err)
	}
	if _, err := io.WriteString(f, text); err != nil {
		return wrapErr(ErrFileWriteFailed, err)
	}
	return nil
}
