package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Resources
	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodeRequestNotFound      ErrorCode = "SERVICE_REQUEST_NOT_FOUND"
	CodeBidNotFound          ErrorCode = "BID_NOT_FOUND"
	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	CodeReviewNotFound       ErrorCode = "REVIEW_NOT_FOUND"

	// Business logic
	CodeInvalidTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	CodeBidConflict       ErrorCode = "BID_CONFLICT"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
