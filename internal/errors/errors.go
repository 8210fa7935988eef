package errors

import (
	"errors"
	"fmt"
)

// Domain-specific error types
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrMessageNotFound indicates the message row was not found
	ErrMessageNotFound = errors.New("message not found")

	// ErrPduNotFound indicates the stored PDU for a message was not found
	ErrPduNotFound = errors.New("pdu not found")

	// ErrUnknownMessageType indicates a kind tag other than "sms" or "mms"
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrSubjectDecode indicates an MMS subject could not be decoded with its charset
	ErrSubjectDecode = errors.New("subject decode error")

	// ErrUpstreamLoad indicates the PDU store or slideshow decoder failed
	ErrUpstreamLoad = errors.New("upstream load error")

	// ErrMalformedFlag marks a report flag that was not a valid integer.
	// It never aborts a build; it is carried by anomalies.
	ErrMalformedFlag = errors.New("malformed flag")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnknownMessageType = "UNKNOWN_MESSAGE_TYPE"
	CodeSubjectDecode      = "SUBJECT_DECODE_ERROR"
	CodeUpstreamLoad       = "UPSTREAM_LOAD_ERROR"
	CodeMalformedFlag      = "MALFORMED_FLAG"
	CodeInternalError      = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// UnknownMessageType builds the error returned for an unsupported kind tag.
func UnknownMessageType(kind string) *AppError {
	return NewAppError(ErrUnknownMessageType,
		fmt.Sprintf("unknown type of the message: %q", kind), CodeUnknownMessageType)
}

// SubjectDecode wraps a charset failure for the subject of the given message URI.
func SubjectDecode(uri string, cause error) *AppError {
	return NewAppError(fmt.Errorf("%w: %v", ErrSubjectDecode, cause),
		fmt.Sprintf("cannot decode subject of %s: %v", uri, cause), CodeSubjectDecode)
}

// UpstreamLoad wraps a PDU store or slideshow failure. The cause stays reachable
// through errors.Is so callers can still detect ErrPduNotFound.
func UpstreamLoad(uri string, cause error) *AppError {
	return NewAppError(errors.Join(ErrUpstreamLoad, cause),
		fmt.Sprintf("failed to load %s: %v", uri, cause), CodeUpstreamLoad)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMessageNotFound) ||
		errors.Is(err, ErrPduNotFound)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnknownMessageType checks if the error reports an unsupported kind tag
func IsUnknownMessageType(err error) bool {
	return errors.Is(err, ErrUnknownMessageType)
}

// IsSubjectDecode checks if the error is a subject decoding failure
func IsSubjectDecode(err error) bool {
	return errors.Is(err, ErrSubjectDecode)
}

// IsUpstreamLoad checks if the error came from the PDU store or slideshow decoder
func IsUpstreamLoad(err error) bool {
	return errors.Is(err, ErrUpstreamLoad)
}

// GetErrorCode returns the appropriate error code for an error
func GetErrorCode(err error) string {
	switch {
	case IsUnknownMessageType(err):
		return CodeUnknownMessageType
	case IsSubjectDecode(err):
		return CodeSubjectDecode
	case IsUpstreamLoad(err):
		return CodeUpstreamLoad
	case IsNotFound(err):
		return CodeNotFound
	case IsInvalidInput(err):
		return CodeInvalidInput
	case errors.Is(err, ErrMalformedFlag):
		return CodeMalformedFlag
	default:
		return CodeInternalError
	}
}

// GetAppError extracts AppError from an error if it exists
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
