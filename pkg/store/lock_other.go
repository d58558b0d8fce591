//go:build !unix

package store

// Lock returns a lock that guards nothing; advisory file locks are only
// implemented on unix platforms.
func (s *Store) Lock() (*Lock, error) {
	return &Lock{path: s.LockPath()}, nil
}

// Unlock is a no-op.
func (l *Lock) Unlock() error {
	return nil
}
