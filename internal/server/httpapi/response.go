package httpapi

import (
	"github.com/dmitrijs2005/mybestvenue/internal/api"
	"github.com/gin-gonic/gin"
)

// RespondSuccess writes the common envelope with success set.
func RespondSuccess(c *gin.Context, httpStatus int, data any, message string) {
	if message == "" {
		message = "ok"
	}
	c.JSON(httpStatus, api.Envelope[any]{
		Success: true,
		Data:    data,
		Message: message,
		Code:    httpStatus,
	})
}

// RespondError writes a failure envelope. message is shown to the user as is.
func RespondError(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, api.Envelope[any]{
		Success: false,
		Message: message,
		Code:    httpStatus,
	})
}
