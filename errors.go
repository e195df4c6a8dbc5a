package memfile

import "io/fs"

// Errors returned by File transitions and reads, always wrapped in an
// [fs.PathError] naming the operation and file.
var (
	ErrPermissionDenied    error = kindError{msg: "permission denied", is: fs.ErrPermission}
	ErrInterruptedBySignal error = kindError{msg: "interrupted by signal"}
	ErrNotOpen             error = kindError{msg: "file must be open for reading", is: fs.ErrClosed}
)

// kindError lets the sentinels above also match the io/fs error they
// correspond to, if any.
type kindError struct {
	msg string
	is  error
}

func (e kindError) Error() string { return e.msg }

func (e kindError) Is(target error) bool {
	return e.is != nil && target == e.is
}

func pathError(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}
