//go:build unix

package rebaseipc

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// region is a 4096-byte memory-mapped file standing in for the named
// shared-memory segment described by the protocol: offset 0 holds the
// 8-byte string length and offset 8 the UTF-8 string itself (the events
// are marker files, see event.go). Go has no portable
// POSIX named-shm API in the standard library, so a regular file under
// the OS temp dir plus golang.org/x/sys/unix.Mmap gives every cooperating
// process the same mapping by path, which is the property the protocol
// actually needs.
type region struct {
	f    *os.File
	data []byte
}

func openRegion(id string, create bool) (*region, error) {
	path := shmPath(id)
	flags := os.O_RDWR
	if create {
		flags |= os.O_CREATE
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return nil, fmt.Errorf("rebaseipc: open shared region %s: %w", path, err)
	}
	if create {
		if err := f.Truncate(regionSize); err != nil {
			f.Close()
			return nil, fmt.Errorf("rebaseipc: size shared region %s: %w", path, err)
		}
	}
	data, err := unix.Mmap(int(f.Fd()), 0, regionSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("rebaseipc: mmap shared region %s: %w", path, err)
	}
	return &region{f: f, data: data}, nil
}

func (r *region) readAt(p []byte, off int64) error {
	copy(p, r.data[off:])
	return nil
}

func (r *region) writeAt(p []byte, off int64) error {
	copy(r.data[off:], p)
	return nil
}

func (r *region) close() error {
	err := unix.Munmap(r.data)
	r.f.Close()
	return err
}

func (r *region) remove(id string) {
	os.Remove(shmPath(id))
}
