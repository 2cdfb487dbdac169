package errors

import "errors"

// Formatting errors. Every error returned by the formatter wraps one of these.
var (
	ErrEmptyInput             = errors.New("no content provided")
	ErrNoStatementsFound      = errors.New("no statements found which end with semicolon")
	ErrInvalidStatementPrefix = errors.New("use prefix not found in statement")
	ErrMalformedGroupSyntax   = errors.New("invalid bracket usage")
	ErrInvalidName            = errors.New("empty name in statement")
	ErrInvalidConfig          = errors.New("invalid formatter configuration")

	// ErrUngroupableItemsRemain signals a defect in the grouping engine rather than bad input.
	ErrUngroupableItemsRemain = errors.New("unable to group all items")
)

// Error message constants for the php-use-group application
const (
	// Input errors
	ErrMsgFailedToReadInput   = "failed to read input"
	ErrMsgFailedToWriteFile   = "failed to write file"
	ErrMsgPathIsDirectory     = "path is a directory, expected a file"
	ErrMsgInPlaceRequiresFile = "--in-place requires a file path"

	// Configuration errors
	ErrMsgFailedToLoadConfig    = "failed to load config file"
	ErrMsgFailedToParseConfig   = "failed to parse config file"
	ErrMsgUnsupportedConfig     = "unsupported config file extension"
	ErrMsgInvalidEnvValue       = "invalid value for environment variable"
	ErrMsgFailedToGetWorkingDir = "failed to get current working directory"

	// Info messages
	InfoMsgConfigFile   = "using config file"
	InfoMsgNoConfigFile = "no config file found, using defaults"
	InfoMsgFormatFailed = "formatting failed, echoing original input"
	InfoMsgEngineDefect = "grouping engine left items ungrouped"
	InfoMsgParsed       = "parsed statements"
)
