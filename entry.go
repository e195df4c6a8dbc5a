package memfile

import "time"

type entry struct {
	file File

	// modtime is when the entry was stored or fulfilled.
	modtime time.Time
}
