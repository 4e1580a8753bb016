package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeInvalidLocation
	ErrorTypeUnknownPlace

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypeDatabase
	ErrorTypeNetwork
	ErrorTypeRemoteRejected
	ErrorTypeParse

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeInvalidLocation:
		return "INVALID_LOCATION"
	case ErrorTypeUnknownPlace:
		return "UNKNOWN_PLACE"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeNetwork:
		return "NETWORK_ERROR"
	case ErrorTypeRemoteRejected:
		return "REMOTE_REJECTED"
	case ErrorTypeParse:
		return "PARSE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used throughout the code base
const (
	ValidationError      = ErrorTypeValidation
	NotFoundError        = ErrorTypeNotFound
	InvalidLocationError = ErrorTypeInvalidLocation
	UnknownPlaceError    = ErrorTypeUnknownPlace
	DatabaseError        = ErrorTypeDatabase
	NetworkError         = ErrorTypeNetwork
	RemoteRejectedError  = ErrorTypeRemoteRejected
	ParseError           = ErrorTypeParse
	ConfigurationError   = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewInvalidLocationError(message string) *AppError {
	return New(InvalidLocationError, message)
}

func NewUnknownPlaceError(message string) *AppError {
	return New(UnknownPlaceError, message)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewNetworkError(message string, cause error) *AppError {
	return Wrap(NetworkError, message, cause)
}

func NewRemoteRejectedError(message string, cause error) *AppError {
	return Wrap(RemoteRejectedError, message, cause)
}

func NewParseError(message string, cause error) *AppError {
	return Wrap(ParseError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the type of the first AppError in err's chain.
func KindOf(err error) ErrorType {
	if appErr, ok := As(err); ok {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	return KindOf(err) == NotFoundError
}

func IsValidationError(err error) bool {
	return KindOf(err) == ValidationError
}

func IsInvalidLocationError(err error) bool {
	return KindOf(err) == InvalidLocationError
}

func IsUnknownPlaceError(err error) bool {
	return KindOf(err) == UnknownPlaceError
}

func IsDatabaseError(err error) bool {
	return KindOf(err) == DatabaseError
}

func IsNetworkError(err error) bool {
	return KindOf(err) == NetworkError
}

func IsRemoteRejectedError(err error) bool {
	return KindOf(err) == RemoteRejectedError
}

func IsParseError(err error) bool {
	return KindOf(err) == ParseError
}

func IsConfigurationError(err error) bool {
	return KindOf(err) == ConfigurationError
}
