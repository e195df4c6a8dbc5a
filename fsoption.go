package memfile

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// An FSOption represents a value that can be passed to NewFS or FS.Set to
// modify the behavior of an FS.
type FSOption interface {
	applyTo(*FS) error
}

// CaseInsensitive causes an FS to lowercase all names before storing,
// retrieving, or fulfilling them when set to true. This option can only be
// set if the FS is empty.
type CaseInsensitive bool

func (fso CaseInsensitive) applyTo(fs *FS) error {
	if len(fs.entries) > 0 {
		return errors.New("cannot update case sensitivity with existing files")
	}
	fs.caseInsensitive = bool(fso)
	return nil
}

// StatFulfills, if true, will cause an FS to fulfill a missing name on a call
// to FS.Stat. By default this is disabled.
type StatFulfills bool

func (fso StatFulfills) applyTo(fs *FS) error {
	fs.statFulfills = bool(fso)
	return nil
}

// Logger sets where an FS logs its transitions. Everything is logged at
// debug level.
func Logger(l logrus.FieldLogger) FSOption {
	return loggerOption{l}
}

type loggerOption struct {
	l logrus.FieldLogger
}

func (fso loggerOption) applyTo(fs *FS) error {
	if fso.l == nil {
		return errors.New("nil logger")
	}
	fs.log = fso.l
	return nil
}

// DefaultOptions are passed to NewWithData for every File a Fulfiller
// produces.
func DefaultOptions(o ...Option) FSOption {
	return defaultsOption(o)
}

type defaultsOption []Option

func (fso defaultsOption) applyTo(fs *FS) error {
	// fail now rather than on the first fulfill
	if _, err := New("", fso...); err != nil {
		return err
	}
	fs.defaults = append([]Option(nil), fso...)
	return nil
}
