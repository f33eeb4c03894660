package models

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse represents a successful answer to a chat request
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is returned for rejected or failed chat requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// WelcomeResponse is the static payload served on the index route
type WelcomeResponse struct {
	Message string `json:"message"`
}

// AnswerSource records which stage of the chat flow produced a reply
type AnswerSource string

const (
	SourceFAQ       AnswerSource = "faq"
	SourceGenerated AnswerSource = "generated"
	SourceEscalated AnswerSource = "escalated"
	SourceError     AnswerSource = "error"
)

// Reply is the outcome of processing one chat message
type Reply struct {
	Text   string
	Source AnswerSource
}
