package response

import (
	"errors"
	"net/http"

	pkgErrors "reporting-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 response wrapping data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	})
}

// Error writes err as a response. HTTPError keeps its code and message; anything else is a 500.
func Error(c *gin.Context, err error) {
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode(), Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   MessageInternalError,
	})
}

// PanicError writes the response for a recovered panic.
func PanicError(c *gin.Context, _ any) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   MessageInternalError,
	})
}
