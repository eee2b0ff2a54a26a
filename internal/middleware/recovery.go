package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/logger"
)

// Recovery returns middleware that recovers from handler panics, logs the
// stack, and responds with a generic 500. A panic is fatal to the request
// only, never to the process.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("recovery")
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered", map[string]interface{}{
					logger.FieldError:    fmt.Sprintf("%v", err),
					logger.FieldPath:     c.Request.URL.Path,
					logger.FieldMethod:   c.Request.Method,
					logger.FieldClientIP: ClientID(c),
					"stack":              string(debug.Stack()),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
