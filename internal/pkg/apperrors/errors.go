package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound          = errors.New("resource not found")
	ErrReferenceNotFound = errors.New("referenced resource not found")
	ErrConflict          = errors.New("conflict")

	// Request errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEnumValue = errors.New("invalid enum value")
	ErrIDMismatch       = errors.New("path id does not match payload id")

	// Storage errors. The wrapped cause is for logs only.
	ErrStorage = errors.New("storage failure")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled = NewCustomError(ErrConflict, "student is already enrolled in this course").WithCode("ALREADY_ENROLLED")
)

// NewNotFoundError creates a not found error naming the missing entity.
func NewNotFoundError(entity string, id int64) error {
	return NewCustomError(ErrNotFound, entity+" not found").
		WithDetails(map[string]interface{}{"entity": entity, "id": id})
}

// NewReferenceNotFoundError creates an error for a foreign entity that does not exist.
func NewReferenceNotFoundError(entity string, id int64) error {
	return NewCustomError(ErrReferenceNotFound, "referenced "+entity+" not found").
		WithDetails(map[string]interface{}{"entity": entity, "id": id})
}

// NewInvalidEnumValueError creates an error for a value outside a closed set.
func NewInvalidEnumValueError(field, value string) error {
	return NewCustomError(ErrInvalidEnumValue, "invalid "+field+": "+value).
		WithDetails(map[string]interface{}{"field": field, "value": value})
}

// NewIDMismatchError creates an error for a payload id that differs from the path id.
func NewIDMismatchError(pathID, payloadID int64) error {
	return NewCustomError(ErrIDMismatch, "id mismatch").
		WithDetails(map[string]interface{}{"pathId": pathID, "payloadId": payloadID})
}

// NewValidationError creates an error for a field that breaks an entity rule.
func NewValidationError(field, message string) error {
	return NewCustomError(ErrValidationFailed, message).
		WithDetails(map[string]interface{}{"field": field})
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// DetailsOf returns the details attached to the first CustomError in err's chain.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
