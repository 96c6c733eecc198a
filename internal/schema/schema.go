// Package schema validates scenario documents against the embedded CUE
// schema before the harness runs them.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError describes one schema violation in a scenario document.
type ValidationError struct {
	// Field is the dotted path of the offending field, empty when the
	// error is not tied to a single field.
	Field string `json:"field,omitempty"`

	// Message is the human-readable description of the violation.
	Message string `json:"message"`

	// Code is the stable error code (E0xx general, E1xx per-field).
	Code string `json:"code"`

	// Line is the 1-based line in the scenario document, 0 if unknown.
	Line int `json:"line,omitempty"`
}

func (e ValidationError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Code)
	b.WriteString(": ")
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Error code constants - unified across all scenario validation.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown validation failure
	ErrCodeYAMLSyntax      = "E002" // Document is not valid YAML
	ErrCodeSchema          = "E003" // Embedded schema failed to compile
	ErrCodeFieldNotAllowed = "E004" // Field rejected by the closed schema
	ErrCodeNotFound        = "E005" // Scenario file not found

	// Per-field validation errors
	ErrCodeName           = "E101" // Invalid or missing name
	ErrCodeDescription    = "E102" // Invalid or missing description
	ErrCodeRotations      = "E103" // Invalid rotation list
	ErrCodeInputFile      = "E104" // Invalid input_file
	ErrCodeExpect         = "E105" // Invalid or empty expect clause
	ErrCodeRunToken       = "E106" // Invalid run_token
	ErrCodeRotationSource = "E107" // rotations/input_file exclusivity violated
)

// MapFieldToErrorCode maps a field path to its validation error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "name":
		return ErrCodeName
	case field == "description":
		return ErrCodeDescription
	case field == "rotations" || strings.HasPrefix(field, "rotations["):
		return ErrCodeRotations
	case field == "input_file":
		return ErrCodeInputFile
	case field == "expect" || strings.HasPrefix(field, "expect."):
		return ErrCodeExpect
	case field == "run_token":
		return ErrCodeRunToken
	default:
		return ErrCodeGeneric
	}
}

// ValidateFile reads a scenario file and validates it against the schema.
func ValidateFile(path string) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("cannot read scenario file: %v", err),
		}}
	}
	return Validate(data, path)
}

// Validate checks a scenario YAML document against the embedded schema.
// The filename is used for error positions only. Returns nil when the
// document conforms.
func Validate(data []byte, filename string) []ValidationError {
	if data == nil {
		// yaml.Extract falls back to reading the named file when the
		// source is nil; validation must only ever see the given bytes.
		data = []byte{}
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{
			Code:    ErrCodeSchema,
			Message: fmt.Sprintf("compiling scenario schema: %v", err),
		}}
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return convertCUEErrors(err, filename, ErrCodeYAMLSyntax)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return convertCUEErrors(err, filename, ErrCodeYAMLSyntax)
	}
	if doc.Kind() == cue.NullKind {
		return []ValidationError{{
			Code:    ErrCodeGeneric,
			Message: "scenario document is empty",
		}}
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return convertCUEErrors(err, filename, "")
	}

	return checkRules(unified)
}

// checkRules enforces the cross-field rules the schema types cannot:
// exactly one rotation source, and at least one pinned expectation.
func checkRules(v cue.Value) []ValidationError {
	var errs []ValidationError

	hasRotations := v.LookupPath(cue.ParsePath("rotations")).Exists()
	hasInputFile := v.LookupPath(cue.ParsePath("input_file")).Exists()
	switch {
	case hasRotations && hasInputFile:
		errs = append(errs, ValidationError{
			Field:   "rotations",
			Code:    ErrCodeRotationSource,
			Message: "exactly one of rotations or input_file must be set",
		})
	case !hasRotations && !hasInputFile:
		errs = append(errs, ValidationError{
			Field:   "rotations",
			Code:    ErrCodeRotationSource,
			Message: "one of rotations or input_file is required",
		})
	}

	pinned := 0
	expectVal := v.LookupPath(cue.ParsePath("expect"))
	if expectVal.Exists() {
		if iter, err := expectVal.Fields(); err == nil {
			for iter.Next() {
				pinned++
			}
		}
	}
	if pinned == 0 {
		errs = append(errs, ValidationError{
			Field:   "expect",
			Code:    ErrCodeExpect,
			Message: "expect must pin at least one of end_of_rotation, every_click, final_position",
		})
	}

	return errs
}

// convertCUEErrors maps CUE errors to ValidationErrors. forceCode, when
// non-empty, overrides the field-derived code for every entry.
func convertCUEErrors(err error, filename, forceCode string) []ValidationError {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		code := forceCode
		if code == "" {
			code = ErrCodeGeneric
		}
		return []ValidationError{{Code: code, Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(list))
	for _, e := range list {
		format, args := e.Msg()
		parts := e.Path()
		// CUE v0.9 and earlier root unification errors at the schema
		// definition, while newer releases report document-relative
		// paths. Strip the root so field codes match either way.
		if len(parts) > 0 && parts[0] == "#Scenario" {
			parts = parts[1:]
		}
		field := fieldPath(parts)

		code := forceCode
		if code == "" {
			code = MapFieldToErrorCode(field)
		}
		message := fmt.Sprintf(format, args...)
		if strings.Contains(message, "field not allowed") {
			code = ErrCodeFieldNotAllowed
		}

		out = append(out, ValidationError{
			Field:   field,
			Message: message,
			Code:    code,
			Line:    lineFor(e, filename),
		})
	}
	return out
}

// lineFor picks the error position inside the validated document,
// falling back to the first valid position of any provenance.
func lineFor(e cueerrors.Error, filename string) int {
	positions := cueerrors.Positions(e)
	var fallback token.Pos
	for _, p := range positions {
		if !p.IsValid() {
			continue
		}
		if p.Filename() == filename {
			return p.Line()
		}
		if !fallback.IsValid() {
			fallback = p
		}
	}
	if fallback.IsValid() {
		return fallback.Line()
	}
	return 0
}

// fieldPath renders a CUE error path as a dotted field path with list
// indices in brackets, e.g. ["rotations", "1"] becomes "rotations[1]".
func fieldPath(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		if isIndex(p) {
			fmt.Fprintf(&b, "[%s]", p)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
