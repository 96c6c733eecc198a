package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/safedial/safedial/internal/harness"
	"github.com/safedial/safedial/internal/schema"
)

// FileValidation holds validation results for one scenario file.
type FileValidation struct {
	Path   string                   `json:"path"`
	Valid  bool                     `json:"valid"`
	Errors []schema.ValidationError `json:"errors,omitempty"`
}

// ValidationResult holds validation results across all requested files.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-or-dir>...",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario YAML files against the scenario schema.

Checks YAML syntax, the CUE schema (unknown fields, types, value
bounds), and the semantic rules: exactly one rotation source and at
least one pinned expectation. Directories are scanned recursively for
.yaml and .yml files.

Exit codes:
  0 - All scenarios valid
  1 - One or more scenarios invalid
  2 - Command error (path not found, no scenario files)

Examples:
  safedial validate ./scenarios
  safedial validate ./scenarios/classic.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	files, err := collectScenarioFiles(paths)
	if err != nil {
		return err
	}

	result := ValidationResult{Valid: true}
	totalErrors := 0
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)

		errs := schema.ValidateFile(file)
		result.Files = append(result.Files, FileValidation{
			Path:   file,
			Valid:  len(errs) == 0,
			Errors: errs,
		})
		if len(errs) > 0 {
			result.Valid = false
			totalErrors += len(errs)
		}
	}

	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result, totalErrors)
}

// collectScenarioFiles expands the argument list into scenario files.
// Directory arguments are scanned recursively; file arguments pass
// through untouched, whatever their extension.
func collectScenarioFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("scenario path not found: %s", path))
		}
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to access %s", path), err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := harness.FindScenarioFiles(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to scan %s", path), err)
		}
		if len(found) == 0 {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("no scenario files found in %s", path))
		}
		files = append(files, found...)
	}
	return files, nil
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return outputJSON(formatter.Writer, CLIResponse{
			Status: "ok",
			Data:   result,
		})
	}

	fmt.Fprintln(formatter.Writer, "✓ All scenarios valid")
	return nil
}

// outputValidationErrors outputs per-file validation failures.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult, totalErrors int) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", totalErrors))

	if formatter.Format == "json" {
		first := firstValidationError(result)
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: first.Message,
			},
		}
		if err := outputJSON(formatter.Writer, response); err != nil {
			return err
		}
		return exitErr
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, file := range result.Files {
		if file.Valid {
			continue
		}
		fmt.Fprintf(formatter.Writer, "%s\n", file.Path)
		for _, e := range file.Errors {
			fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
		}
		fmt.Fprintln(formatter.Writer)
	}

	return exitErr
}

func firstValidationError(result ValidationResult) schema.ValidationError {
	for _, file := range result.Files {
		if len(file.Errors) > 0 {
			return file.Errors[0]
		}
	}
	return schema.ValidationError{Code: schema.ErrCodeGeneric, Message: "validation failed"}
}
