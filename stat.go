package memfile

import (
	"io/fs"
	"path"
	"time"
)

type FileStat struct {
	name    string
	size    int64
	modtime time.Time
}

func newFileStat(name string, e *entry) *FileStat {
	return &FileStat{name: name, size: int64(e.file.Len()), modtime: e.modtime}
}

func (s FileStat) Name() string {
	return path.Base(s.name)
}

func (s FileStat) Size() int64 {
	return s.size
}

func (s FileStat) Mode() fs.FileMode {
	return fs.FileMode(0) // "regular"
}

func (s FileStat) ModTime() time.Time {
	return s.modtime
}

func (s FileStat) IsDir() bool {
	return s.Mode().IsDir()
}

func (s FileStat) Sys() any {
	return nil
}
