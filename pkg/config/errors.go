package config

import "fmt"

// NotFoundError reports that no candidate path exists. Path is the
// last candidate, the canonical place the file was expected. Init
// flows treat this as "nothing to overwrite" rather than a failure.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file `%s` does not exist", e.Path)
}

// ReadError reports an I/O failure reading an existing path.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("could not read config file `%s`", e.Path)
}

func (e *ReadError) Unwrap() error { return e.Err }

// SyntaxError reports that the file is not valid JSON.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("config file `%s` is not valid JSON", e.Path)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// VersionReason distinguishes the three ways version resolution fails.
type VersionReason int

const (
	// VersionMissing means the document has no version field.
	VersionMissing VersionReason = iota
	// VersionNotString means the version field is not a string.
	VersionNotString
	// VersionUnknown means no schema is registered for the version.
	VersionUnknown
)

// VersionError reports that the document's declared version could not
// be resolved to a schema.
type VersionError struct {
	Path    string
	Reason  VersionReason
	Version string
}

func (e *VersionError) Error() string {
	switch e.Reason {
	case VersionNotString:
		return fmt.Sprintf("config file `%s` version field `%s` is not a string", e.Path, VersionField)
	case VersionUnknown:
		return fmt.Sprintf("config file `%s` declares unknown version `%s`", e.Path, e.Version)
	default:
		return fmt.Sprintf("config file `%s` does not declare a `%s` field", e.Path, VersionField)
	}
}

// WriteError reports a failed config write.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write config file `%s`", e.Path)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DeleteError reports a failed config delete. During migration a
// DeleteError leaves the old file in place; a WriteError after a
// successful delete leaves no file at all and needs manual recovery.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("could not delete config file `%s`", e.Path)
}

func (e *DeleteError) Unwrap() error { return e.Err }
