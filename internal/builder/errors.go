package builder

import (
	"fmt"
	"strings"
)

// ConfigError reports a missing or invalid setting. It is raised before any
// file is read or written.
type ConfigError struct {
	Field   string // Setting or flag name (optional)
	Message string // Human-readable error message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid configuration")
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Field))
	}
	if e.Message != "" {
		sb.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PreconditionError reports an input or output directory that is not in a
// state a build can start from. Nothing in Path has been modified.
type PreconditionError struct {
	Path    string // Offending path
	Message string // Human-readable error message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface for PreconditionError.
func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Path, e.Message)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error wrapping support.
func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// StageFailure is one render stage that did not produce its artifact.
type StageFailure struct {
	Stage string
	Err   error
}

// RenderError aggregates the render stages that failed. The assembled
// markdown is complete and usable when a RenderError is returned.
type RenderError struct {
	Failures []StageFailure
}

// Error implements the error interface for RenderError.
func (e *RenderError) Error() string {
	if len(e.Failures) == 1 {
		f := e.Failures[0]
		return fmt.Sprintf("%s rendering failed: %v", f.Stage, f.Err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d render stages failed:", len(e.Failures)))
	for _, f := range e.Failures {
		sb.WriteString(fmt.Sprintf("\n  - %s: %v", f.Stage, f.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying stage errors so errors.Is and errors.As
// can match any of them.
func (e *RenderError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
