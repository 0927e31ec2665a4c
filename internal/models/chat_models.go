package models

import "time"

// ChatRequest is a message to the eco assistant, with optional context such
// as the user's last route or location.
type ChatRequest struct {
	Message string            `json:"message" validate:"required"`
	Context map[string]string `json:"context,omitempty"`
}

// ChatSuggestion is a follow-up action the assistant proposes.
type ChatSuggestion struct {
	Text string `json:"text"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Success     bool             `json:"success"`
	Response    string           `json:"response,omitempty"`
	Suggestions []ChatSuggestion `json:"suggestions,omitempty"`
	Model       string           `json:"model,omitempty"`
	Fallback    bool             `json:"fallback,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// EcoTip is one actionable sustainability tip.
type EcoTip struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	Category string `json:"category"`
}
