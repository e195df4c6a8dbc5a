package memfile

import (
	"bytes"
	"fmt"
	"io"
	"slices"
)

// A File is a named, immutable byte buffer with an Open/Closed state. Reads
// are only permitted while Open; Open and Close may fail according to the
// File's FaultPolicy. File is a value type: transitions return a new value.
type File struct {
	name   string
	data   []byte
	state  State
	faults FaultPolicy
}

// New returns an empty, Closed File using DefaultRates unless opts say
// otherwise.
func New(name string, opts ...Option) (File, error) {
	f := File{
		name:   name,
		state:  StateClosed,
		faults: DefaultRates,
	}
	for i := range opts {
		if err := opts[i].applyTo(&f); err != nil {
			return File{}, fmt.Errorf("failed to apply %T to %q: %w", opts[i], name, err)
		}
	}
	return f, nil
}

// NewWithData is like New but the File holds a copy of data.
func NewWithData(name string, data []byte, opts ...Option) (File, error) {
	f, err := New(name, opts...)
	if err != nil {
		return File{}, err
	}
	f.data = bytes.Clone(data)
	return f, nil
}

// Name returns the name given at construction.
func (f File) Name() string {
	return f.name
}

// Len returns the content length in bytes.
func (f File) Len() int {
	return len(f.data)
}

// State returns the current state.
func (f File) State() State {
	return f.state
}

// ReadInto appends a copy of the content to *dst and returns the number of
// bytes appended. It fails with ErrNotOpen unless f is Open.
func (f File) ReadInto(dst *[]byte) (int, error) {
	if f.state != StateOpen {
		return 0, pathError("read", f.name, ErrNotOpen)
	}
	*dst = append(slices.Grow(*dst, len(f.data)), f.data...)
	return len(f.data), nil
}

// WriteTo implements [io.WriterTo]. Like ReadInto it requires f to be Open.
func (f File) WriteTo(w io.Writer) (int64, error) {
	if f.state != StateOpen {
		return 0, pathError("read", f.name, ErrNotOpen)
	}
	n, err := w.Write(f.data)
	if err == nil && n != len(f.data) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// String renders f as <name STATE>.
func (f File) String() string {
	return fmt.Sprintf("<%s %s>", f.name, f.state)
}

// GoString renders f with its raw content for debugging.
func (f File) GoString() string {
	return fmt.Sprintf("File{name: %q, data: %v, state: %#v}", f.name, f.data, f.state)
}
