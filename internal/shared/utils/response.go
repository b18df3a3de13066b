package utils

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/shared/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// PageInfo is present in list responses only when the client asked for a page.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// ListResponse represents a list response with an optional pagination window
type ListResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Pagination *PageInfo   `json:"pagination,omitempty"`
}

var exposeDiagnostics atomic.Bool

// SetExposeDiagnostics controls whether underlying error text is sent to
// clients. It is enabled outside production.
func SetExposeDiagnostics(enabled bool) {
	exposeDiagnostics.Store(enabled)
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	if len(message) > 0 {
		response.Message = message[0]
	} else {
		response.Message = "Resource created successfully"
	}

	c.JSON(http.StatusCreated, response)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, errorType errors.ErrorType, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(errorType),
			Message: message,
		},
	})
}

// ErrorResponseWithError sends an error response based on error type
func ErrorResponseWithError(c *gin.Context, err error) {
	var statusCode int
	var errorInfo ErrorInfo

	if appErr := errors.GetAppError(err); appErr != nil {
		statusCode = appErr.Code
		errorInfo = ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		}
		if cause := appErr.Cause(); cause != nil && exposeDiagnostics.Load() {
			errorInfo.Details = cause.Error()
		}
	} else {
		statusCode = http.StatusInternalServerError
		errorInfo = ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error occurred",
		}
		if exposeDiagnostics.Load() {
			errorInfo.Details = err.Error()
		}
	}

	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &errorInfo,
	})
}

// ListSuccessResponse sends a list response. page is nil when the client did
// not request pagination.
func ListSuccessResponse(c *gin.Context, items interface{}, total int64, page *Pagination) {
	list := ListResponse{
		Items: items,
		Total: total,
	}
	if page != nil {
		list.Pagination = &PageInfo{
			Page:       page.Page,
			Limit:      page.PageSize,
			TotalPages: TotalPages(total, page.PageSize),
		}
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    list,
	})
}

// NoContentResponse sends a no content response
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
