package memfile

import (
	"bytes"
	"io"
	"io/fs"
)

// A Handle is an open File obtained through FS.Open.
type Handle struct {
	r    *bytes.Reader
	name string
	fs   *FS
}

// Close runs the Close transition on the stored File and then releases the
// reader. If the transition fails the Handle stays open and Close may be
// retried. It implements [fs.File].
func (h *Handle) Close() error {
	if h.r == nil {
		return &fs.PathError{Op: "close", Path: h.name, Err: fs.ErrClosed}
	}
	if err := h.fs.closeEntry(h.name); err != nil {
		return err
	}
	h.r = nil
	return nil
}

// Stat implements [fs.File].
func (h *Handle) Stat() (fs.FileInfo, error) {
	return h.fs.Stat(h.name)
}

// Read implements [fs.File].
func (h *Handle) Read(b []byte) (int, error) {
	if h.r == nil {
		return 0, fs.ErrClosed
	}
	return h.r.Read(b)
}

// ReadAt implements [io.ReaderAt].
func (h *Handle) ReadAt(b []byte, off int64) (int, error) {
	if h.r == nil {
		return 0, fs.ErrClosed
	}
	return h.r.ReadAt(b, off)
}

// ReadByte implements [io.ByteScanner].
func (h *Handle) ReadByte() (byte, error) {
	if h.r == nil {
		return 0, fs.ErrClosed
	}
	return h.r.ReadByte()
}

// UnreadByte implements [io.ByteScanner].
func (h *Handle) UnreadByte() error {
	if h.r == nil {
		return fs.ErrClosed
	}
	return h.r.UnreadByte()
}

// ReadRune implements [io.RuneScanner].
func (h *Handle) ReadRune() (rune, int, error) {
	if h.r == nil {
		return 0, 0, fs.ErrClosed
	}
	return h.r.ReadRune()
}

// UnreadRune implements [io.RuneScanner].
func (h *Handle) UnreadRune() error {
	if h.r == nil {
		return fs.ErrClosed
	}
	return h.r.UnreadRune()
}

// Seek implements [io.Seeker].
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	if h.r == nil {
		return 0, fs.ErrClosed
	}
	return h.r.Seek(offset, whence)
}

// WriteTo implements [io.WriterTo].
func (h *Handle) WriteTo(w io.Writer) (int64, error) {
	if h.r == nil {
		return 0, fs.ErrClosed
	}
	return h.r.WriteTo(w)
}
