package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interviewsched/models"
	"interviewsched/services/booking"
	"interviewsched/services/clock"
)

// SchedulingHandler serves the interview scheduling API.
type SchedulingHandler struct {
	svc        booking.BookingService
	clock      clock.Clock
	allowReset bool
}

func NewSchedulingHandler(svc booking.BookingService, clk clock.Clock, allowReset bool) *SchedulingHandler {
	if clk == nil {
		clk = clock.System{}
	}
	return &SchedulingHandler{svc: svc, clock: clk, allowReset: allowReset}
}

func (h *SchedulingHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": h.clock.Now().UTC()})
}

func (h *SchedulingHandler) ListPeopleHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListPeople())
}

// ResetHandler reloads the seed dataset. Disabled outside demo deployments.
func (h *SchedulingHandler) ResetHandler(c *gin.Context) {
	if !h.allowReset {
		writeError(c, models.NewError(models.CodeForbidden, "Reset is disabled"))
		return
	}
	h.svc.Reset()
	getLogger(c).Info("Scheduling data reset")
	c.JSON(http.StatusOK, gin.H{
		"slots":  h.svc.ListSlots(models.SlotFilters{}),
		"people": h.svc.ListPeople(),
	})
}
