// Package errors defines the typed errors that abort a depsync pass.
//
// Each kind has a sentinel, so callers tell a missing version alias apart
// from an I/O failure with errors.Is, and a struct carrying its details for
// errors.As. Message text is for people and may change.
package errors

import (
	"errors"
	"fmt"
)

// Is and As forward to the standard library so callers need one import.
var (
	Is = errors.Is
	As = errors.As
)

// Sentinels matched by the typed errors below.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrCanceled              = errors.New("operation canceled")
	ErrUndefinedVersionAlias = errors.New("undefined version alias")
	ErrNoManagedDependencies = errors.New("no managed dependencies")
	ErrAnchorNotFound        = errors.New("anchor not found")
	ErrUnparseableVersion    = errors.New("unparseable version")
)

// IsCanceled reports whether err wraps ErrCanceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// NotFoundError reports a missing build file, catalog or other resource.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError returns a NotFoundError for the resource named id.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Resource, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// ValidationError reports an option, coordinate or edit that is malformed.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// ConfigError reports a configuration source that could not be loaded, such
// as a config file that is missing or malformed.
type ConfigError struct {
	Source  string
	Message string
	Err     error
}

// NewConfigError returns a ConfigError for source caused by err.
func NewConfigError(source, message string, err error) *ConfigError {
	return &ConfigError{Source: source, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "configuration: " + msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UndefinedVersionAliasError reports a complex catalog entry whose
// version.ref names no [versions] definition.
type UndefinedVersionAliasError struct {
	Entry      string // library alias
	Module     string // group:artifact
	VersionRef string
}

func (e *UndefinedVersionAliasError) Error() string {
	return fmt.Sprintf("catalog entry %s (%s) references undefined version alias %q",
		e.Entry, e.Module, e.VersionRef)
}

// Is matches ErrUndefinedVersionAlias.
func (e *UndefinedVersionAliasError) Is(target error) bool { return target == ErrUndefinedVersionAlias }

// IsUndefinedVersionAlias reports whether err is or wraps an
// UndefinedVersionAliasError.
func IsUndefinedVersionAlias(err error) bool { return errors.Is(err, ErrUndefinedVersionAlias) }

// NoManagedDependenciesError reports a build script with no declaration
// under the marker, which leaves no anchor for insertions.
type NoManagedDependenciesError struct {
	File   string
	Marker string
}

func (e *NoManagedDependenciesError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("cannot find any `%s` dependencies in build file", e.Marker)
	}
	return fmt.Sprintf("cannot find any `%s` dependencies in build file %s", e.Marker, e.File)
}

// Is matches ErrNoManagedDependencies.
func (e *NoManagedDependenciesError) Is(target error) bool { return target == ErrNoManagedDependencies }

// IsNoManagedDependencies reports whether err is or wraps a
// NoManagedDependenciesError.
func IsNoManagedDependencies(err error) bool { return errors.Is(err, ErrNoManagedDependencies) }

// AnchorNotFoundError reports an edit whose captured text is no longer at
// its offset.
type AnchorNotFoundError struct {
	File   string
	Anchor string
	Offset int
}

func (e *AnchorNotFoundError) Error() string {
	where := fmt.Sprintf("at offset %d", e.Offset)
	if e.File != "" {
		where += " in " + e.File
	}
	return fmt.Sprintf("cannot find declaration %q %s", e.Anchor, where)
}

// Is matches ErrAnchorNotFound.
func (e *AnchorNotFoundError) Is(target error) bool { return target == ErrAnchorNotFound }

// IsAnchorNotFound reports whether err is or wraps an AnchorNotFoundError.
func IsAnchorNotFound(err error) bool { return errors.Is(err, ErrAnchorNotFound) }

// VersionParseError reports a version that cannot be ordered, even after
// truncation to its major.minor.patch prefix.
type VersionParseError struct {
	Version    string
	Coordinate string
	Err        error
}

func (e *VersionParseError) Error() string {
	if e.Coordinate == "" {
		return fmt.Sprintf("cannot compare version %q: %v", e.Version, e.Err)
	}
	return fmt.Sprintf("cannot compare version %q of %s: %v", e.Version, e.Coordinate, e.Err)
}

func (e *VersionParseError) Unwrap() error { return e.Err }

// Is matches ErrUnparseableVersion.
func (e *VersionParseError) Is(target error) bool { return target == ErrUnparseableVersion }

// IsUnparseableVersion reports whether err is or wraps a VersionParseError.
func IsUnparseableVersion(err error) bool { return errors.Is(err, ErrUnparseableVersion) }

// ParseError reports a catalog that does not decode as TOML. Line and Column
// are 1-based and zero when unknown.
type ParseError struct {
	Format  string
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: invalid %s: %s", e.File, e.Line, e.Column, e.Format, e.Message)
	case e.File != "":
		return fmt.Sprintf("%s: invalid %s: %s", e.File, e.Format, e.Message)
	default:
		return fmt.Sprintf("invalid %s: %s", e.Format, e.Message)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// WrapParse returns a ParseError for file caused by err, or nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// IOError reports a failed stat, read or write of Path.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// WrapIO returns an IOError for operation on path caused by err, or nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ResourceError reports a failed step of the CLI or engine, such as loading
// config, creating the syncer or finishing a canceled pass.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

// NewResourceError returns a ResourceError caused by err.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, target, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// WrapResource returns a ResourceError caused by err, or nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}
