package foundation

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// FieldError describes one configuration field that failed validation.
type FieldError struct {
	Field   string
	Code    string
	Message string
	Value   any
}

// Error implements the error interface.
func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// Rule checks the value of field and returns nil when it passes.
type Rule[T any] func(field string, value T) *FieldError

// Problems collects field errors so a configuration reports every problem at
// once instead of stopping at the first.
type Problems struct {
	errs []FieldError
}

// Check runs rules against value in order, recording each failure.
func Check[T any](p *Problems, field string, value T, rules ...Rule[T]) {
	for _, rule := range rules {
		if fe := rule(field, value); fe != nil {
			p.errs = append(p.errs, *fe)
		}
	}
}

// Add records fe directly, for checks that span several fields.
func (p *Problems) Add(fe FieldError) {
	p.errs = append(p.errs, fe)
}

// Errors returns the recorded field errors in the order they were found.
func (p *Problems) Errors() []FieldError {
	return append([]FieldError(nil), p.errs...)
}

// Err returns nil when nothing was recorded. Otherwise it returns a
// ValidationError whose message lists every problem and whose context maps
// each offending field to the value it was given.
func (p *Problems) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(p.errs))
	for _, fe := range p.errs {
		messages = append(messages, fe.Error())
	}
	b := errors.ValidationError("invalid configuration: " + strings.Join(messages, "; "))
	for _, fe := range p.errs {
		b = b.WithContext(fe.Field, fe.Value)
	}
	return b.Build()
}

// NotBlank rejects strings with no non-whitespace content.
func NotBlank(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Code: "required", Message: "value must not be empty", Value: value}
	}
	return nil
}

// NonNegative rejects integers below zero.
func NonNegative(field string, value int) *FieldError {
	if value < 0 {
		return &FieldError{Field: field, Code: "non_negative", Message: "value must not be negative", Value: value}
	}
	return nil
}

// RelativePath rejects slash-separated paths that are absolute or climb out
// of the directory they are resolved against.
func RelativePath(field, value string) *FieldError {
	clean := path.Clean(filepath.ToSlash(value))
	if path.IsAbs(clean) || filepath.IsAbs(value) || clean == ".." || strings.HasPrefix(clean, "../") {
		return &FieldError{Field: field, Code: "relative_path", Message: "path must be relative and stay inside its root", Value: value}
	}
	return nil
}

// FileName rejects paths that do not name a file below their root.
func FileName(field, value string) *FieldError {
	if path.Clean(filepath.ToSlash(value)) == "." || strings.HasSuffix(value, "/") {
		return &FieldError{Field: field, Code: "file_name", Message: "path must name a file", Value: value}
	}
	return nil
}
