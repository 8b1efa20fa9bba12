package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/cashflow_guard/models"
)

const reminderNotFound = "reminder not found"

type ReminderHandler struct {
	service *models.ReminderService
}

func NewReminderHandler(service *models.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

func listParams(c *gin.Context) models.ReminderListParams {
	return models.ReminderListParams{
		Limit:  queryPtr(c, "limit"),
		Offset: queryPtr(c, "offset"),
		Status: queryPtr(c, "status"),
		From:   queryPtr(c, "from"),
		To:     queryPtr(c, "to"),
	}
}

// GET /api/reminders?limit=&offset=&status=&from=&to=
func (h *ReminderHandler) listRemindersHandler(c *gin.Context) {
	views, err := h.service.List(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err, reminderNotFound)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /api/reminders/export
func (h *ReminderHandler) exportRemindersHandler(c *gin.Context) {
	f, err := h.service.Export(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err, reminderNotFound)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=reminders.xlsx")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (h *ReminderHandler) getReminderHandler(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, reminderNotFound)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ReminderHandler) createReminderHandler(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		// an empty body reports every required field
		if !errors.Is(err, io.EOF) {
			bindError(c, err)
			return
		}
		body = map[string]json.RawMessage{}
	}
	view, err := h.service.Create(c.Request.Context(), models.DecodeNewReminder(body))
	if err != nil {
		respondError(c, err, reminderNotFound)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *ReminderHandler) updateReminderHandler(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		// an empty body is an update with no fields
		if !errors.Is(err, io.EOF) {
			bindError(c, err)
			return
		}
		body = map[string]json.RawMessage{}
	}
	view, err := h.service.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, err, reminderNotFound)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ReminderHandler) deleteReminderHandler(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, reminderNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
