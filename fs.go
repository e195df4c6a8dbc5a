package memfile

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// An FS is a directory of Files keyed by name. Paths are always delimited by
// forward slashes. Opening a name through the [fs.FS] interface runs the
// File's Open transition, and closing the returned handle runs its Close
// transition, so a File's fault policy applies to every handle.
//
// Names missing from the FS may be generated on demand by Fulfillers.
type FS struct {
	mu        sync.Mutex
	entries   map[string]*entry
	callbacks []Fulfiller
	defaults  []Option
	log       logrus.FieldLogger

	caseInsensitive bool
	statFulfills    bool
}

func NewFS(o ...FSOption) (*FS, error) {
	d := &FS{
		entries: make(map[string]*entry),
		log:     logrus.StandardLogger(),
	}
	for i := range o {
		if err := o[i].applyTo(d); err != nil {
			return nil, fmt.Errorf("failed to apply %T: %w", o[i], err)
		}
	}
	return d, nil
}

// Set applies an FSOption to an existing FS, if possible.
func (d *FS) Set(o FSOption) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return o.applyTo(d)
}

// Len reports the number of Files currently stored in the FS.
func (d *FS) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// FulfillWith adds one or more Fulfiller callbacks to this FS. Fulfillers are
// run in LIFO order.
func (d *FS) FulfillWith(f ...Fulfiller) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callbacks = append(d.callbacks, f...)
	return nil
}

// Put stores f under its name, replacing any File already there.
func (d *FS) Put(f File) error {
	n, err := d.normalize(f.Name())
	if err != nil {
		return fmt.Errorf("cannot put %q: %w", f.Name(), err)
	}
	d.mu.Lock()
	d.entries[n] = &entry{file: f, modtime: time.Now()}
	d.mu.Unlock()
	return nil
}

// Get returns the stored File for name, in whatever state the last
// transition left it. Get never fulfills.
func (d *FS) Get(name string) (File, error) {
	n, err := d.normalize(name)
	if err != nil {
		return File{}, fmt.Errorf("cannot get %q: %w", name, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[n]
	if !ok {
		return File{}, &fs.PathError{Op: "get", Path: name, Err: fs.ErrNotExist}
	}
	return e.file, nil
}

// Remove drops name from the FS. Handles already open keep their content.
func (d *FS) Remove(name string) error {
	n, err := d.normalize(name)
	if err != nil {
		return fmt.Errorf("cannot remove %q: %w", name, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.entries[n]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(d.entries, n)
	return nil
}

func (d *FS) lookup(name string) (*entry, error) {
	// must be called with d.mu Locked
	if e, ok := d.entries[name]; ok {
		return e, nil
	}
	return d.fulfill(name)
}

func (d *FS) fulfill(name string) (*entry, error) {
	// must be called with d.mu Locked
	var content []byte
	var modtime *time.Time
	var err error

	// the last added callback is called first, until we encounter an
	// error or get non-nil content
	for i := range d.callbacks {
		idx := len(d.callbacks) - (i + 1)
		content, modtime, err = d.callbacks[idx](name)
		if err != nil {
			return nil, err
		}
		if content != nil {
			break
		}
	}
	if content == nil {
		return nil, fs.ErrNotExist
	}
	f, err := NewWithData(name, content, d.defaults...)
	if err != nil {
		return nil, err
	}
	if modtime == nil {
		n := time.Now()
		modtime = &n
	}
	e := &entry{file: f, modtime: *modtime}
	d.entries[name] = e
	d.log.WithFields(logrus.Fields{"name": name, "size": f.Len()}).Debug("fulfilled")
	return e, nil
}

func (d *FS) normalize(name string) (string, error) {
	if d.caseInsensitive {
		name = strings.ToLower(name)
	}
	n := strings.TrimPrefix(path.Clean(name), "/")
	if n == "." || n == "" {
		return "", fs.ErrInvalid
	}
	return n, nil
}

// openName is normalize for the [fs.FS] methods, which only accept names
// satisfying [fs.ValidPath].
func (d *FS) openName(name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", fs.ErrInvalid
	}
	return d.normalize(name)
}

// transition runs op on e and stores the result. The stored File is
// unchanged if op fails.
func (d *FS) transition(e *entry, op Op) error {
	// must be called with d.mu Locked
	var f File
	var err error
	switch op {
	case OpOpen:
		f, err = Open(e.file)
	case OpClose:
		f, err = Close(e.file)
	default:
		return fmt.Errorf("unknown transition %q", op)
	}
	e.file = f
	l := d.log.WithFields(logrus.Fields{"name": f.Name(), "op": op, "state": f.State()})
	if err != nil {
		l.WithError(err).Debug("transition failed")
		return err
	}
	l.Debug("transition")
	return nil
}

// Open implements [fs.FS]. The returned *Handle holds a snapshot of the
// content read after a successful Open transition.
func (d *FS) Open(name string) (fs.File, error) {
	n, err := d.openName(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	e, err := d.lookup(n)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if err := d.transition(e, OpOpen); err != nil {
		return nil, err
	}
	var buf []byte
	if _, err := e.file.ReadInto(&buf); err != nil {
		return nil, err
	}
	return &Handle{r: bytes.NewReader(buf), name: n, fs: d}, nil
}

// closeEntry runs the Close transition for a handle. A name removed while
// the handle was open has nothing to transition.
func (d *FS) closeEntry(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[name]
	if !ok {
		return nil
	}
	return d.transition(e, OpClose)
}

// ReadFile implements [fs.ReadFileFS]. It runs a full Open, read, Close
// cycle on the stored File and returns a copy of its content.
func (d *FS) ReadFile(name string) ([]byte, error) {
	n, err := d.openName(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	e, err := d.lookup(n)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if err := d.transition(e, OpOpen); err != nil {
		return nil, err
	}
	buf := []byte{}
	if _, err := e.file.ReadInto(&buf); err != nil {
		return nil, err
	}
	if err := d.transition(e, OpClose); err != nil {
		return nil, err
	}
	return buf, nil
}

// Stat implements [fs.StatFS]. Stat never runs a transition.
func (d *FS) Stat(name string) (fs.FileInfo, error) {
	n, err := d.openName(name)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[n]
	if !ok {
		if !d.statFulfills {
			return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
		}
		if e, err = d.fulfill(n); err != nil {
			return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
		}
	}
	return newFileStat(n, e), nil
}
