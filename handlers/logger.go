package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interviewsched/middleware"
)

// getLogger retrieves the request scoped logger from the Gin context.
func getLogger(c *gin.Context) *zap.Logger {
	return middleware.RequestLogger(c)
}
