package response

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/kidsense/sensory-assessment-api/pkg/errors"
)

// ErrorBody is the error contract the existing frontend consumes: a bare
// message string, no envelope.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON sends a success response. Entities are serialised bare, without an
// envelope, to stay byte-compatible with the legacy API.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Error converts the error to its HTTP status and legacy body shape.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Message: appErr.Message})
}

// ErrorStatus sends the legacy body shape with an explicit status override.
// The update path uses it to keep reporting not-found as a 400.
func ErrorStatus(c *gin.Context, status int, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, ErrorBody{Message: appErr.Message})
}
