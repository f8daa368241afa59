package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/httpresp"
	ucReminder "github.com/odontolab/clinic-api/internal/usecase/reminder"
)

// ReminderHandler is the polling surface for the external dispatcher:
// it lists due reminders and records delivery. It does not send
// anything itself.
type ReminderHandler struct {
	listDueUC  *ucReminder.ListDue
	markSentUC *ucReminder.MarkSent
}

func NewReminderHandler(
	listDueUC *ucReminder.ListDue,
	markSentUC *ucReminder.MarkSent,
) *ReminderHandler {
	return &ReminderHandler{
		listDueUC:  listDueUC,
		markSentUC: markSentUC,
	}
}

func (h *ReminderHandler) ListDue(c *gin.Context) {
	reminders, err := h.listDueUC.Execute(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, reminders, int64(len(reminders)))
}

func (h *ReminderHandler) MarkSent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid reminder id.")
		return
	}

	reminder, err := h.markSentUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, reminder)
}
