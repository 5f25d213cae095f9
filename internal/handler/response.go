package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "pomodoroclock/backend/internal/errors"
)

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil {
		apiErr = apperrors.Internal("internal server error")
	}
	if cause := apiErr.Cause(); cause != nil && gin.Mode() != gin.ReleaseMode {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, cause)
	}

	errorBody := gin.H{
		"code":    apiErr.Code,
		"message": apiErr.Message,
		"status":  apiErr.Status,
	}
	if apiErr.Details != nil {
		errorBody["details"] = apiErr.Details
	}

	c.JSON(apiErr.Status, gin.H{
		"error": errorBody,
	})
}

// bindJSON decodes the body into req and renders a BadRequest listing every
// failed rule when it does not fit. It reports whether the handler may go on.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			messages = append(messages, ruleMessage(fe))
		}
		writeError(c, apperrors.Invalid(messages))
		return false
	}

	writeError(c, apperrors.Invalid([]string{"invalid request body: " + err.Error()}))
	return false
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be an email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value < 1 {
		writeError(c, apperrors.BadRequest(fmt.Sprintf("%s must be a positive integer", name)))
		return 0, false
	}
	return value, true
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	writeError(c, apperrors.NotFound("Not Found"))
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
