package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"todo-server/internal/utils/platformerrors"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Code      string `json:"code,omitempty"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError converts an error into an HTTP response. Client-fault errors
// (validation, not found, conflict, auth) surface their own message so the
// caller can act on it. Server-fault errors surface only the generic handler
// message; the underlying detail goes to the log, keyed by the error code.
func HandleError(c *gin.Context, err error, message string) {
	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: message})
		return
	}

	statusCode := platformerrors.ErrorTypeToHTTPStatus(platformErr.GetErrorType())
	exposed := platformErr.Message
	if statusCode >= http.StatusInternalServerError {
		exposed = message
		platformerrors.LogError(log.Logger, platformErr)
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Code:      platformErr.GetUUID(),
		Error:     exposed,
		RequestID: platformErr.RequestID,
	})
}

// HandleNewError raises a fresh handler-layer error and responds with it.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message, customUUID string) {
	err := platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler, errorType, message, nil, customUUID)
	HandleError(c, err, message)
}
