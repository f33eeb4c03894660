package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"faqbot/models"
	"faqbot/services"
)

// maxChatBodyBytes caps the /chat request body
const maxChatBodyBytes = 64 << 10

// ChatHandler answers one chat message.
//
//	400 {"error": "Invalid JSON format"}       body is not a JSON object
//	413 {"error": "Request body too large"}    body exceeds maxChatBodyBytes
//	400 {"error": "No input provided"}         message missing or blank
//	500 {"error": "Failed to generate a response"}
//	200 {"response": "..."}                    FAQ hit, generated answer or fallback
func (c *Controller) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	reply, err := c.chatbot.ProcessMessage(r.Context(), req.Message)
	switch {
	case errors.Is(err, services.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "No input provided")
		return
	case errors.Is(err, services.ErrProvider):
		writeError(w, http.StatusInternalServerError, "Failed to generate a response")
		return
	case err != nil:
		c.logger.Error("chat request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply.Text})
}
