package memfile

// Open moves f to the Open state, whatever its current state. If the fault
// policy fails the transition, f is returned unchanged with an
// ErrPermissionDenied path error.
func Open(f File) (File, error) {
	if f.policy().Fail(OpOpen) {
		return f, pathError(string(OpOpen), f.name, ErrPermissionDenied)
	}
	f.state = StateOpen
	return f, nil
}

// Close moves f to the Closed state, whatever its current state. If the
// fault policy fails the transition, f is returned unchanged with an
// ErrInterruptedBySignal path error.
func Close(f File) (File, error) {
	if f.policy().Fail(OpClose) {
		return f, pathError(string(OpClose), f.name, ErrInterruptedBySignal)
	}
	f.state = StateClosed
	return f, nil
}

func (f File) policy() FaultPolicy {
	if f.faults == nil {
		// zero File{}
		return DefaultRates
	}
	return f.faults
}
