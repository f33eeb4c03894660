package controllers

import (
	"net/http"

	"faqbot/models"
)

const welcomeMessage = "Welcome to the FAQ chatbot API"

// IndexHandler serves the static welcome payload
func (c *Controller) IndexHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.WelcomeResponse{Message: welcomeMessage})
}
