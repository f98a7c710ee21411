package apperrors

import "net/http"

// Factories for wrapping repository errors and predefined domain errors.

// ErrNotFound converts a repository not-found (e.g. gorm.ErrRecordNotFound)
// into the uniform 404 shape.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrPropertyNotFound = New(
	CodeNotFound,
	"property",
	"Property not found",
	http.StatusNotFound,
)

var ErrInvalidCategory = New(
	CodeValidationFailed,
	"property",
	"Invalid property category provided",
	http.StatusBadRequest,
)

var ErrTestimonialNotFound = New(
	CodeNotFound,
	"testimonial",
	"Testimonial not found",
	http.StatusNotFound,
)

var ErrInvalidTestimonialStatus = New(
	CodeInvalidStatus,
	"testimonial",
	"Status must be either approved or rejected",
	http.StatusBadRequest,
)
