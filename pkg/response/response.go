package response

import (
	"errors"
	"net/http"
	"time"

	"merchant-pulse/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey mirrors middleware.CtxRequestID; importing middleware here
// would create a cycle.
const requestIDKey = "request_id"

// SuccessResponse wraps every JSON payload.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

var errUnknown = apperror.New(apperror.CodeUnknown, "Internal server error", http.StatusInternalServerError)

// OK sends data with 200.
func OK(c *gin.Context, data interface{}) {
	success(c, http.StatusOK, data)
}

// Accepted sends data with 202. Control messages are applied asynchronously,
// so 202 is all the caller learns.
func Accepted(c *gin.Context, data interface{}) {
	success(c, http.StatusAccepted, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Attachment sends body as a download named filename.
func Attachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("X-Request-ID", requestID(c))
	c.Data(http.StatusOK, contentType, body)
}

// Error renders err. An *apperror.AppError anywhere in the chain keeps its code
// and status; anything else becomes SYS_000 without leaking the message.
func Error(c *gin.Context, err error) {
	appErr := errUnknown
	var target *apperror.AppError
	if errors.As(err, &target) {
		appErr = target
	}
	c.JSON(appErr.HTTPStatus, ErrorResponse{
		ErrorCode: appErr.Code,
		Message:   appErr.Message,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// requestID falls back to a fresh id for handlers run outside the middleware chain.
func requestID(c *gin.Context) string {
	if s := c.GetString(requestIDKey); s != "" {
		return s
	}
	return uuid.NewString()
}
