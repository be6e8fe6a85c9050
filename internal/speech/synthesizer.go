// Package speech converts bulletin text into audio via a cloud
// text-to-speech provider.
package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Synthesizer abstracts a text-to-speech backend.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// SynthesisError is returned when text cannot be turned into audio: quota
// exhausted, rejected credentials, or text the voice cannot speak.
type SynthesisError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("synthesis via %s failed: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("synthesis via %s failed: %s", e.Provider, e.Reason)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// WriteAudio writes audio bytes to path, replacing any existing file. The
// write goes through a temp file in the same directory so a reader never sees
// a partially written file.
func WriteAudio(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".bulletin-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp audio file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close audio file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace audio file: %w", err)
	}
	return nil
}
