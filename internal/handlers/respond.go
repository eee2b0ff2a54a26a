// Package handlers contains the HTTP handlers for the quiz API. Handlers
// bind and validate input, call the store, and map errors onto the wire via
// a single responder.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
)

// respondError writes an error response. AppErrors map to their HTTP status
// with a {"message": ...} body; anything else becomes a generic 500 and the
// cause is logged, never leaked.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	appErr, ok := apperr.AsAppError(err)
	if !ok {
		appErr = apperr.Internal(err)
	}
	if appErr.HTTPStatus >= 500 {
		log.Error("Request failed", map[string]interface{}{
			logger.FieldError:  appErr.Error(),
			logger.FieldPath:   c.Request.URL.Path,
			logger.FieldMethod: c.Request.Method,
		})
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, apperr.MessageBody{Message: appErr.Message})
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(id), nil
}

// bindJSON binds the request body into dst, converting bind failures into a
// 400 AppError.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Validation("invalid request body").WithCause(err)
	}
	return nil
}
