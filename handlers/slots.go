package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interviewsched/models"
)

// ListSlotsHandler returns slots matching the optional interviewerId, status,
// from and to query filters, plus the people directory.
func (h *SchedulingHandler) ListSlotsHandler(c *gin.Context) {
	filters := models.SlotFilters{InterviewerID: c.Query("interviewerId")}

	switch status := models.SlotStatus(c.Query("status")); status {
	case "", models.SlotAvailable, models.SlotBooked:
		filters.Status = status
	default:
		writeError(c, models.NewError(models.CodeInvalidInput, "Invalid filter parameters").
			WithDetails(map[string]any{"status": "must be available or booked"}))
		return
	}

	from, to, err := queryRange(c)
	if err != nil {
		writeError(c, invalidInput("Invalid filter parameters", err))
		return
	}
	filters.From, filters.To = from, to

	c.JSON(http.StatusOK, gin.H{
		"slots":  h.svc.ListSlots(filters),
		"people": h.svc.ListPeople(),
	})
}

func (h *SchedulingHandler) CreateSlotHandler(c *gin.Context) {
	var in models.CreateSlotInput
	if !bindJSON(c, &in, "Invalid slot payload") {
		return
	}

	slot, err := h.svc.CreateSlot(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	getLogger(c).Info("Slot created",
		zap.String("slotId", slot.ID),
		zap.String("interviewerId", slot.InterviewerID))
	respondCreated(c, slot)
}
