package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// These constants mirror internal/rebaseipc's unexported layout so the
// child process (a separate invocation of this same binary, with no
// access to the parent's in-process rebaseipc.channel value) can speak
// the same wire protocol without the parent package exporting internals
// purely for this one caller.
const (
	regionSize   = 4096
	lenFieldSize = 8
	offsetLen    = 0
	offsetData   = offsetLen + lenFieldSize
)

func shmPath(id string) string {
	return filepath.Join(os.TempDir(), "gitui_"+id)
}

func eventPath(id, name string) string {
	return shmPath(id) + "." + name + ".evt"
}

// runSequenceEditor implements the child side of the handshake: open the
// shared region, write the todo path Git gave us, signal ready, then
// block on shutdown before exiting (letting rebase -i resume with
// whatever the parent wrote back).
func runSequenceEditor(eventID, todoPath string) error {
	f, err := os.OpenFile(shmPath(eventID), os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("gitui: sequence editor: open shared region: %w", err)
	}
	defer f.Close()

	abs, err := filepath.Abs(todoPath)
	if err != nil {
		abs = todoPath
	}
	if err := writeStr(f, abs); err != nil {
		return fmt.Errorf("gitui: sequence editor: write todo path: %w", err)
	}

	if err := signalMarker(eventPath(eventID, "ready")); err != nil {
		return fmt.Errorf("gitui: sequence editor: signal ready: %w", err)
	}

	shutPath := eventPath(eventID, "shutdown")
	for {
		if _, err := os.Stat(shutPath); err == nil {
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func signalMarker(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	return f.Close()
}

func writeStr(f *os.File, s string) error {
	b := []byte(s)
	if offsetData+len(b) > regionSize {
		return fmt.Errorf("payload too large for shared region")
	}
	var lenBuf [lenFieldSize]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(b)))
	if _, err := f.WriteAt(lenBuf[:], offsetLen); err != nil {
		return err
	}
	_, err := f.WriteAt(b, offsetData)
	return err
}
