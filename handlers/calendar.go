package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interviewsched/models"
)

func (h *SchedulingHandler) CalendarHandler(c *gin.Context) {
	interviewerID := c.Query("interviewerId")
	if interviewerID == "" {
		writeError(c, models.NewError(models.CodeInvalidInput, "interviewerId is required"))
		return
	}
	from, to, err := queryRange(c)
	if err != nil {
		writeError(c, invalidInput("Invalid date range", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"calendar": h.svc.ListCalendar(interviewerID, from, to)})
}
