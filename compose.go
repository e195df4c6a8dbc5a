package memfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/go-git/go-billy/v5"
)

// A Fulfiller is a callback that receives a normalized name and tries to
// obtain the content for it. Returning nil content and a nil error means the
// Fulfiller has nothing for that name. modtime may be nil, in which case the
// time of fulfillment is used.
type Fulfiller func(name string) (content []byte, modtime *time.Time, err error)

// Compose adapts an existing fs.FS implementation to a Fulfiller. The
// source file's modification time is carried over when it can be read.
func Compose(t fs.FS) Fulfiller {
	return func(name string) ([]byte, *time.Time, error) {
		f, err := t.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open %q in composed %T: %w", name, t, err)
		}
		defer f.Close()

		buf, err := io.ReadAll(f)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot read %q in composed %T: %w", name, t, err)
		}

		var mt *time.Time
		if fi, err := f.Stat(); err == nil {
			m := fi.ModTime()
			mt = &m
		}
		return nonNil(buf), mt, nil
	}
}

// ComposeBilly adapts a go-billy filesystem to a Fulfiller.
func ComposeBilly(b billy.Basic) Fulfiller {
	return func(name string) ([]byte, *time.Time, error) {
		f, err := b.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open %q in billy %T: %w", name, b, err)
		}
		defer f.Close()

		buf, err := io.ReadAll(f)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot read %q in billy %T: %w", name, b, err)
		}

		var mt *time.Time
		if fi, err := b.Stat(name); err == nil {
			m := fi.ModTime()
			mt = &m
		}
		return nonNil(buf), mt, nil
	}
}

// nonNil keeps an empty file distinct from "not here".
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
