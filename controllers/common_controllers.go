package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"faqbot/models"
)

// HealthHandler reports chatbot configuration and Discord state
func (c *Controller) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := c.chatbot.GetStatus()
	if c.discordService != nil {
		health.Discord = c.discordService.GetStatus()
	}

	writeJSON(w, http.StatusOK, health)
}

// writeJSON encodes payload with the given status code
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
