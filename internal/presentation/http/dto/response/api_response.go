package response

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/pagination"
)

// APIResponse is the envelope of every JSON reply
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains metadata about the response
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func send(c *gin.Context, status int, body APIResponse) {
	body.Meta = newMeta(c)
	c.JSON(status, body)
}

// newMeta reuses the request id assigned by the logger middleware when there is one
func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// OK sends a 200 reply
func OK(c *gin.Context, message string, data interface{}) {
	send(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

// Created sends a 201 reply
func Created(c *gin.Context, message string, data interface{}) {
	send(c, http.StatusCreated, APIResponse{Success: true, Message: message, Data: data})
}

// SuccessWithPagination sends one page of a list
func SuccessWithPagination[T any](c *gin.Context, statusCode int, message string, result *pagination.PaginatedResult[T]) {
	send(c, statusCode, APIResponse{Success: true, Message: message, Data: result})
}

// Attachment sends a file download
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Error maps err to its status code. Errors that are not an AppError become a 500.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(appErr.RetryAfter.Seconds()))))
	}
	send(c, appErr.Code, APIResponse{
		Message: appErr.Message,
		Errors:  appErr.Errors,
		Details: appErr.Details,
	})
}

// ErrorWithCode sends a bare error message
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	send(c, statusCode, APIResponse{Message: message})
}

func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusForbidden, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusInternalServerError, message)
}
