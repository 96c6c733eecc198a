package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/safedial/safedial/internal/dial"
	"github.com/safedial/safedial/internal/loader"
	"github.com/safedial/safedial/internal/schema"
)

// Scenario defines one conformance test case for the dial simulation.
// It names a rotation sequence, inline or via an input file, and pins the
// outcomes the run must reproduce.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden snapshots are keyed
	// on it, so renaming a scenario orphans its fixture.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Rotations is the inline rotation sequence, e.g. [L68, R48].
	// Mutually exclusive with InputFile.
	Rotations []string `yaml:"rotations,omitempty"`

	// InputFile names a rotation command file, one command per line.
	// Relative paths resolve against the base path given at load time.
	InputFile string `yaml:"input_file,omitempty"`

	// Expect pins the outcomes to check. At least one must be set.
	Expect Expect `yaml:"expect"`

	// RunToken is an optional fixed run token for deterministic snapshots.
	// If empty, the harness uses testutil.DefaultRunToken.
	RunToken string `yaml:"run_token,omitempty"`
}

// Expect pins expected run outcomes. Nil fields are not checked, so a
// scenario can pin a single counter without spelling out the rest.
type Expect struct {
	// EndOfRotation is the expected end-of-rotation zero count.
	EndOfRotation *int64 `yaml:"end_of_rotation,omitempty"`

	// EveryClick is the expected every-click zero count.
	EveryClick *int64 `yaml:"every_click,omitempty"`

	// FinalPosition is the expected final dial position, 0 to 99.
	FinalPosition *int `yaml:"final_position,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, violates the scenario
// schema, contains unknown fields (typos), or names rotations the
// simulator cannot parse.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a relative input_file against the provided base path.
// This is useful when scenario files reference inputs relative to their
// own directory.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Schema validation first: it produces coded, positioned errors for
	// everything structural.
	if verrs := schema.Validate(data, path); len(verrs) > 0 {
		joined := make([]error, len(verrs))
		for i, ve := range verrs {
			joined[i] = ve
		}
		return nil, fmt.Errorf("invalid scenario: %w", errors.Join(joined...))
	}

	// Parse YAML with strict field validation. The closed schema already
	// rejected unknown fields; this decode produces the struct.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the input file relative to the base path BEFORE validation
	if scenario.InputFile != "" && basePath != "" && !filepath.IsAbs(scenario.InputFile) {
		scenario.InputFile = filepath.Join(basePath, scenario.InputFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks what the schema cannot: rotation strings must
// parse into commands (the pattern admits distances the simulator
// rejects, like L9999999999) and a referenced input file must exist.
func validateScenario(s *Scenario) error {
	for i, r := range s.Rotations {
		if _, err := dial.ParseRotationCommand(r); err != nil {
			return fmt.Errorf("rotations[%d]: %w", i, err)
		}
	}

	if s.InputFile != "" {
		if _, err := os.Stat(s.InputFile); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", s.InputFile)
		}
	}

	return nil
}

// Commands resolves the scenario's rotation sequence, reading the input
// file when one is named.
func (s *Scenario) Commands() ([]dial.RotationCommand, error) {
	if s.InputFile != "" {
		return loader.ReadCommands(s.InputFile)
	}

	commands := make([]dial.RotationCommand, 0, len(s.Rotations))
	for i, r := range s.Rotations {
		cmd, err := dial.ParseRotationCommand(r)
		if err != nil {
			return nil, fmt.Errorf("rotations[%d]: %w", i, err)
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}
