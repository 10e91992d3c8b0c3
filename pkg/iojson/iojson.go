// Package iojson reads and writes JSON documents from a command line
// interface perspective: files, stdin pipes and stdout.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Marshal returns obj as indented JSON.
func Marshal(obj any) ([]byte, error) {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return bits, nil
}

// WriteWith writes obj as indented JSON followed by a newline.
func WriteWith(w io.Writer, obj any) error {
	bits, err := Marshal(obj)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout].
func Write(obj any) error {
	return WriteWith(os.Stdout, obj)
}

// WriteFile writes obj as indented JSON to path, creating parent
// directories as needed. The file is written to a temporary sibling first
// and renamed into place.
func WriteFile(path string, obj any) error {
	bits, err := Marshal(obj)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".iojson-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(bits, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}

	return os.Rename(tmp.Name(), path)
}
