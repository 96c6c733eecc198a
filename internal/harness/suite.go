package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SuiteResult contains results from running a directory of scenarios.
type SuiteResult struct {
	TotalScenarios int               `json:"total_scenarios"`
	Passed         int               `json:"passed"`
	Failed         int               `json:"failed"`
	Failures       []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioFailure represents one failed scenario in a suite run.
type ScenarioFailure struct {
	Scenario     string `json:"scenario"`
	ScenarioPath string `json:"scenario_path"`
	Error        string `json:"error"`
}

// Pass reports whether every scenario in the suite passed.
func (r *SuiteResult) Pass() bool {
	return r.Failed == 0
}

// FindScenarioFiles walks the directory and returns all .yaml and .yml
// file paths in lexical order.
func FindScenarioFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// RunDirectory loads and runs every scenario file under dir.
// Returns a summary of results; individual scenario failures land in
// the summary rather than aborting the suite.
//
// For each scenario file:
// 1. Load with the scenario's own directory as base path
// 2. Run via harness.Run
// 3. Collect pass/fail and failure details
func RunDirectory(dir string) (*SuiteResult, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing scenario directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	paths, err := FindScenarioFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("error scanning directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	result := &SuiteResult{}
	for _, path := range paths {
		result.TotalScenarios++

		scenario, err := LoadScenarioWithBasePath(path, filepath.Dir(path))
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				ScenarioPath: path,
				Error:        fmt.Sprintf("failed to load scenario: %v", err),
			})
			continue
		}

		runResult, err := Run(scenario)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				Scenario:     scenario.Name,
				ScenarioPath: path,
				Error:        fmt.Sprintf("scenario execution failed: %v", err),
			})
			continue
		}

		if !runResult.Pass {
			result.Failed++
			result.Failures = append(result.Failures, ScenarioFailure{
				Scenario:     scenario.Name,
				ScenarioPath: path,
				Error:        strings.Join(runResult.Errors, "\n"),
			})
			continue
		}

		result.Passed++
	}

	return result, nil
}
