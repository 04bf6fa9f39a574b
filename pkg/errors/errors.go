package errors

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Error message constants for the ts-imports-group application
const (
	// File processing errors
	ErrMsgFailedToReadFile    = "failed to read file"
	ErrMsgFailedToParseFile   = "failed to parse file"
	ErrMsgFailedToFormatFile  = "failed to format file"
	ErrMsgFailedToWriteFile   = "failed to write file"
	ErrMsgFailedToResolveConf = "failed to resolve configuration"

	// Directory processing errors
	ErrMsgFailedToCheckPath        = "failed to check path"
	ErrMsgFailedToFindSourceFiles  = "failed to find source files in directory"
	ErrMsgFilesFailedToProcess     = "%d files failed to process"
	ErrMsgFilesWouldChange         = "%d files are not formatted"
	ErrMsgFailedToLoadProjectFile  = "failed to load project options"
	ErrMsgFailedToLoadConfigFile   = "failed to load config file"
	ErrMsgFailedToEncodeConfigDump = "failed to encode configuration"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files or specify a single file for stdout output."
	InfoMsgNoSourceFilesFound          = "No source files found in directory: %s"
	InfoMsgFoundSourceFiles            = "Found %d source files in directory: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgWouldProcess                = "Would reformat: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgErrorCount                  = ", %d files had errors"
)

// Skip reasons. A skip leaves the file unchanged and is never reported as a failure.
var (
	ErrParseUnsupported = &SkipError{Reason: "unsupported syntax in import region"}
	ErrEmptyRegion      = &SkipError{Reason: "no static imports"}
	ErrSuppressed       = &SkipError{Reason: "import region overlaps a linter suppression"}
	ErrUnknownDialect   = &SkipError{Reason: "unknown source dialect"}
	ErrGeneratedFile    = &SkipError{Reason: "generated file"}
)

// SkipError is a recoverable condition: the file is left as it is.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skipped: " + e.Reason
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// ConflictError reports bindings that cannot be merged into one import of Specifier.
type ConflictError struct {
	Specifier string
	Bindings  []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting bindings for %q: %s", e.Specifier, strings.Join(e.Bindings, ", "))
}

// IsSkip reports whether err (or anything it wraps) is a SkipError.
func IsSkip(err error) bool {
	var skip *SkipError
	return As(err, &skip)
}

// IsConflict reports whether err (or anything it wraps) is a ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return As(err, &conflict)
}

// IsConfig reports whether err (or anything it wraps) is a ConfigError.
func IsConfig(err error) bool {
	var cfgErr *ConfigError
	return As(err, &cfgErr)
}

// New returns an error with the message and a stack trace.
func New(message string) error {
	return pkgerrors.New(message)
}

// Errorf formats an error message and records a stack trace.
func Errorf(format string, args ...interface{}) error {
	return pkgerrors.Errorf(format, args...)
}

// Wrap annotates err with message. It returns nil when err is nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message. It returns nil when err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return pkgerrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return pkgerrors.As(err, target)
}
