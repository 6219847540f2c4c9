package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/credential-service/internal/pkg/apperror"
	"github.com/marcos-nsantos/credential-service/internal/pkg/httputil"
)

// AllowMethods rejects any request whose method is not listed with 405 and
// an Allow header.
func AllowMethods(methods ...string) gin.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(c *gin.Context) {
		if slices.Contains(methods, c.Request.Method) {
			c.Next()
			return
		}
		c.Header("Allow", allow)
		httputil.HandleError(c, apperror.MethodNotAllowed(c.Request.Method))
		c.Abort()
	}
}
