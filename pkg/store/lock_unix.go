//go:build unix

package store

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
)

// Lock takes the store's run lock without blocking. A lock held by another
// run yields a LockError.
func (s *Store) Lock() (*Lock, error) {
	if err := os.MkdirAll(s.dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", s.dir, err)
	}
	path := s.LockPath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, constants.FilePermissions)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, &errors.LockError{Path: path, Err: err}
		}
		return nil, errors.WrapIO("lock", path, err)
	}
	return &Lock{file: f, path: path}, nil
}

// Unlock releases the lock. It is safe to call on a nil Lock.
func (l *Lock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return errors.WrapIO("unlock", l.path, err)
}
