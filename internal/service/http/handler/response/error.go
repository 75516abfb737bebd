package response

import (
	"github.com/gin-gonic/gin"
	"github.com/reusedev/weather-viewer/internal/modules/result"
)

var (
	ParamError            = gin.H{"code": 10001, "message": "param error"}
	ParamErrorWithMessage = func(message string) gin.H {
		return gin.H{"code": 10001, "message": message}
	}

	InternalError = gin.H{"code": 10002, "message": "internal error"}

	UpstreamError = gin.H{"code": 10003, "message": "weather server unreachable or sent a bad response"}

	Busy = gin.H{"code": 10004, "message": "request queue is full, try later"}

	ServerWarning = func(status result.ResponseStatus) gin.H {
		return gin.H{"code": 10005, "message": status.Message, "data": status}
	}

	SuccessWithData = func(data interface{}) gin.H {
		return gin.H{"code": 0, "data": data}
	}
)
