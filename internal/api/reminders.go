package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pathakanu/healthAI/internal/reminder"
)

func (h *handler) listReminders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "reminders": h.Reminders.List()})
}

func (h *handler) addReminder(c *gin.Context) {
	var in reminder.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		h.handleError(c, "bad reminder body", &reminder.ValidationError{Field: "body", Reason: err.Error()}, nil)
		return
	}

	r, err := h.Reminders.Add(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, "add reminder", err, nil)
		return
	}
	h.announce(fmt.Sprintf("Reminder added for %s at %s", r.MedicineName, reminder.FormatTime(r.Time)))
	c.JSON(http.StatusCreated, gin.H{"success": true, "reminder": r})
}

func (h *handler) editReminder(c *gin.Context) {
	id, ok := h.reminderID(c)
	if !ok {
		return
	}
	var in reminder.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		h.handleError(c, "bad reminder body", &reminder.ValidationError{Field: "body", Reason: err.Error()}, nil)
		return
	}

	r, err := h.Reminders.Edit(c.Request.Context(), id, in)
	if err != nil {
		h.handleError(c, "edit reminder", err, nil)
		return
	}
	h.announce(fmt.Sprintf("Reminder updated for %s at %s", r.MedicineName, reminder.FormatTime(r.Time)))
	c.JSON(http.StatusOK, gin.H{"success": true, "reminder": r})
}

func (h *handler) deleteReminder(c *gin.Context) {
	id, ok := h.reminderID(c)
	if !ok {
		return
	}

	deleted, err := h.Reminders.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "delete reminder", err, nil)
		return
	}
	if deleted {
		h.announce("Reminder deleted successfully!")
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

func (h *handler) reminderID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.handleError(c, "bad reminder id", &reminder.ValidationError{Field: "id", Reason: "must be an integer"}, nil)
		return 0, false
	}
	return id, true
}
