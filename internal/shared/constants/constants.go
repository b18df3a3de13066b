package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID       = "user_id"
	ContextKeyUserRole     = "user_role"
	ContextKeyUserFullName = "user_full_name"
	ContextKeyRequestID    = "request_id"

	// Upload directories under the uploads root
	DirRepairImages     = "repair-images"
	DirCompletionImages = "completion-images"

	// Static route prefix for stored uploads
	UploadsURLPrefix = "/uploads"

	// Setting categories
	SettingCategoryTelegram = "telegram"

	// Notification task types
	TaskRepairCreated   = "repair.created"
	TaskRepairCompleted = "repair.completed"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
