package iojson

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned when no file is given and stdin is a terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f flag or pipe JSON input")

// Input reads a JSON document from the --file flag or a stdin pipe.
type Input struct {
	path  string
	stdin *os.File
}

// Flag returns the --file flag bound to this input.
func (in *Input) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &in.path,
	}
}

// SetPath sets the file path directly, for positional arguments.
func (in *Input) SetPath(path string) {
	if path != "" {
		in.path = path
	}
}

// Path returns the configured file path or "" for stdin.
func (in *Input) Path() string { return in.path }

// Bytes returns the raw input.
func (in *Input) Bytes() ([]byte, error) {
	if in.path != "" {
		data, err := os.ReadFile(in.path)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return data, nil
	}

	stdin := in.stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return nil, ErrNoInput
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

