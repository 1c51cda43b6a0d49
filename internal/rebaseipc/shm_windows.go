//go:build windows

package rebaseipc

import (
	"fmt"
	"os"
)

// region on Windows falls back to plain file I/O against the same path
// both processes agree on; Windows has its own named-shared-memory API
// (CreateFileMapping) but direct file sharing over the temp path gives
// the same observable protocol without a second platform-specific
// binding.
type region struct {
	f *os.File
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
	return &region{f: f}, nil
}

func (r *region) readAt(p []byte, off int64) error {
	_, err := r.f.ReadAt(p, off)
	return err
}

func (r *region) writeAt(p []byte, off int64) error {
	if _, err := r.f.WriteAt(p, off); err != nil {
		return err
	}
	return r.f.Sync()
}

func (r *region) close() error {
	return r.f.Close()
}

func (r *region) remove(id string) {
	os.Remove(shmPath(id))
}
