package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"interviewsched/models"
	"interviewsched/utils"
)

func writeError(c *gin.Context, err error) {
	utils.WriteError(c, getLogger(c), err)
}

// invalidInput builds the 400 returned when a payload or query fails shape checks.
func invalidInput(msg string, cause error) *models.Error {
	e := models.NewError(models.CodeInvalidInput, msg)
	if cause != nil {
		e = e.WithDetails(map[string]any{"error": cause.Error()})
	}
	return e
}

// bindJSON decodes and validates the body against its binding tags.
func bindJSON(c *gin.Context, dst any, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, invalidInput(msg, err))
		return false
	}
	return true
}

// queryTime parses an optional RFC 3339 query value into UTC.
func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func queryRange(c *gin.Context) (from, to *time.Time, err error) {
	if from, err = queryTime(c, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = queryTime(c, "to"); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func respondCreated(c *gin.Context, v any) {
	c.JSON(http.StatusCreated, v)
}
