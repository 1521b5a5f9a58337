// Package flock provides a wrapper around the flock syscall.
package flock

import (
	"os"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
)

// LockSuffix is appended to an output path to name its lock file.
const LockSuffix = ".lock"

type Lock struct {
	Path string
	File *os.File
}

func New(file string) *Lock {
	return &Lock{Path: file}
}

// ForOutput creates the lock guarding writes to the output file at path.
func ForOutput(path string) *Lock {
	return New(path + LockSuffix)
}

func (l *Lock) lockMode(blocking bool) int {
	mode := syscall.LOCK_EX
	if !blocking {
		mode = mode | syscall.LOCK_NB
	}
	return mode
}

// Lock takes the lock, waiting for it if blocking is set. A non-blocking
// Lock on a lock held elsewhere fails with an error whose cause is
// syscall.EWOULDBLOCK.
func (l *Lock) Lock(blocking bool) error {
	if l.File == nil {
		file, err := os.OpenFile(l.Path, os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return errors.Wrap(err, "open lock")
		}
		l.File = file
	}

	if err := syscall.Flock(int(l.File.Fd()), l.lockMode(blocking)); err != nil {
		l.File.Close()
		l.File = nil
		return errors.Wrapf(err, "flock %s", l.Path)
	}
	if err := l.writePid(); err != nil {
		syscall.Flock(int(l.File.Fd()), syscall.LOCK_UN)
		l.File.Close()
		l.File = nil
		return errors.Wrapf(err, "write pid to %s", l.Path)
	}
	return nil
}

func (l *Lock) writePid() error {
	if err := l.File.Truncate(0); err != nil {
		return err
	}
	_, err := l.File.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	return err
}

func (l *Lock) Unlock() error {
	if l.File == nil {
		return nil
	}
	defer func() {
		l.File.Close()
		os.Remove(l.Path)
		l.File = nil
	}()
	return syscall.Flock(int(l.File.Fd()), syscall.LOCK_UN)
}
