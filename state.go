package memfile

// A State is the open/closed tag of a File. The zero value is StateClosed.
type State uint8

const (
	StateClosed State = iota
	StateOpen
)

// Valid reports whether s is one of the enumerated states.
func (s State) Valid() bool {
	switch s {
	case StateClosed, StateOpen:
		return true
	}
	return false
}

func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	}
	return "INVALID"
}

// GoString is the %#v form used in debug renderings of a File.
func (s State) GoString() string {
	switch s {
	case StateOpen:
		return "Open"
	case StateClosed:
		return "Closed"
	}
	return "State(invalid)"
}
