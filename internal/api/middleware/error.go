package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fiscal-score/internal/api/models"
)

// ErrorHandler recovers from panics in handlers and converts them into the
// standard error envelope so scoring requests never tear down the server.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			msg = v
		case error:
			msg = v.Error()
		case fmt.Stringer:
			msg = v.String()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: msg,
			},
		})
	})
}
