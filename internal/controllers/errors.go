package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"vividexpense-be/internal/export"
	"vividexpense-be/internal/service"
)

// respondError maps a service error to its HTTP status and message.
// Unexpected errors are hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, service.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrDuplicateEmail):
		status, message = http.StatusBadRequest, "Email already registered"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrTooManyAttempts):
		status, message = http.StatusTooManyRequests, "Too many failed login attempts. Please try again later."
	case errors.Is(err, service.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrExpenseNotFound):
		status, message = http.StatusNotFound, "Expense not found"
	case errors.Is(err, export.ErrNoDashboard):
		status, message = http.StatusNotFound, "Dashboard link not configured"
	default:
		// Logged by the request logger, never sent to the client.
		_ = c.Error(err)
		status, message = http.StatusInternalServerError, "Internal server error"
	}

	c.JSON(status, gin.H{
		"error": message,
	})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   message,
		"details": bindDetails(err),
	})
}

func bindDetails(err error) interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			details = append(details, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return details
}
