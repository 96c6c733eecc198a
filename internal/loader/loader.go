// Package loader reads rotation command files. Input files carry one
// command per line; the loader rejects the whole file on the first
// malformed line rather than skipping it, so a corrupted input never
// produces a silently wrong simulation.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/safedial/safedial/internal/dial"
)

const (
	// AssetsDir holds the bundled puzzle inputs, relative to the working
	// directory.
	AssetsDir = "assets"

	// PuzzleInput is the fixed input name the run command loads when no
	// file is given.
	PuzzleInput = "puzzle_input"
)

// InputPath returns the path of a named input under the assets
// directory.
func InputPath(name string) string {
	return filepath.Join(AssetsDir, name)
}

// DefaultInputPath is the input the driver executes by default.
func DefaultInputPath() string {
	return InputPath(PuzzleInput)
}

// ReadCommands loads a rotation command file. Every line must parse;
// blank lines anywhere in the file are errors, not separators.
func ReadCommands(path string) ([]dial.RotationCommand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer f.Close()
	return ParseCommands(f)
}

// ParseCommands parses newline-separated rotation commands from r. A
// single trailing newline does not produce a phantom empty line, but a
// doubled one does, and that empty line fails like any other malformed
// line.
func ParseCommands(r io.Reader) ([]dial.RotationCommand, error) {
	scanner := bufio.NewScanner(r)
	commands := make([]dial.RotationCommand, 0, 64)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		cmd, err := dial.ParseRotationCommand(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to parse rotation command '%s': %w", line, text, err)
		}
		commands = append(commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading commands: %w", err)
	}
	return commands, nil
}
