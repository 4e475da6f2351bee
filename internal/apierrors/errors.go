package apierrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intask-dev/intask/internal/models"
)

// Authentication error codes returned on 401 responses.
const (
	CodeNoToken         = "NO_TOKEN_PROVIDED"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodePasswordChanged = "PASSWORD_CHANGED"
	CodeAuthFailed      = "AUTHENTICATION_FAILED"
)

// Unauthenticated sends a 401. Authentication failures keep the
// {status, code, message} body the token-verification contract pins down;
// everything else in the API uses the {success, data|error} envelope.
func Unauthenticated(c *gin.Context, code, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}

// Fail sends an error response in the standard envelope.
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// BadRequest sends a 400 for validation failures.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Fail(c, http.StatusBadRequest, message)
}

// Conflict sends a 400 for uniqueness violations. The reference API reported
// duplicate emails and team names as 400, so the status is kept for
// compatibility even though the condition is a conflict.
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Forbidden sends a 403.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	Fail(c, http.StatusForbidden, message)
}

// ForbiddenWithRoles sends a 403 carrying the required-roles context.
func ForbiddenWithRoles(c *gin.Context, message string, required []models.Role, yours models.Role) {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	c.JSON(http.StatusForbidden, gin.H{
		"success":       false,
		"error":         message,
		"requiredRoles": required,
		"yourRole":      yours,
	})
}

// NotFound sends a 404.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Fail(c, http.StatusNotFound, message)
}

// InternalError sends a 500. Detail is included only outside release mode.
func InternalError(c *gin.Context, detail string) {
	body := gin.H{
		"success": false,
		"error":   "Internal server error",
	}
	if detail != "" && gin.Mode() != gin.ReleaseMode {
		body["details"] = detail
	}
	c.JSON(http.StatusInternalServerError, body)
}
