package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interviewsched/models"
)

func (h *SchedulingHandler) BookSlotHandler(c *gin.Context) {
	var in models.BookSlotInput
	if !bindJSON(c, &in, "Invalid booking payload") {
		return
	}

	b, err := h.svc.BookSlot(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	getLogger(c).Info("Slot booked",
		zap.String("bookingId", b.ID),
		zap.String("slotId", b.SlotID),
		zap.String("coordinatorId", b.CoordinatorID))
	respondCreated(c, b)
}

func (h *SchedulingHandler) RescheduleHandler(c *gin.Context) {
	var in models.RescheduleInput
	if !bindJSON(c, &in, "Invalid reschedule payload") {
		return
	}

	b, err := h.svc.RescheduleBooking(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *SchedulingHandler) CancelBookingHandler(c *gin.Context) {
	b, err := h.svc.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
