package controllers

import (
	"net/http"
	"strconv"

	"faqbot/models"
)

const (
	defaultEscalationLimit = 50
	maxEscalationLimit     = 200
)

// EscalationsHandler lists escalated questions for human follow-up, newest
// first. Query parameters: status (default "pending"), limit (1-200, default 50).
func (c *Controller) EscalationsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	status := models.StatusPending
	if raw := query.Get("status"); raw != "" {
		parsed, ok := models.ParseEscalationStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown status: "+raw)
			return
		}
		status = parsed
	}

	limit := defaultEscalationLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxEscalationLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxEscalationLimit))
			return
		}
		limit = n
	}

	records, err := c.chatbot.Escalations().List(r.Context(), status, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list escalations")
		return
	}
	if records == nil {
		records = []models.EscalatedQuestion{}
	}

	writeJSON(w, http.StatusOK, models.EscalationListResponse{
		Status:      status,
		Count:       len(records),
		Escalations: records,
	})
}
