package store

import "os"

// Lock is an exclusive advisory lock on a store, held for one sync run.
type Lock struct {
	file *os.File
	path string
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}
