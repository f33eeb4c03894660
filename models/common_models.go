package models

// Health status constants
const (
	StatusHealthy = "healthy"
)

// HealthResponse is served by the health endpoint
type HealthResponse struct {
	Status      string         `json:"status"`
	Provider    string         `json:"provider"`
	MatchPolicy string         `json:"match_policy"`
	Store       string         `json:"store"`
	FAQCount    int            `json:"faq_count"`
	Uptime      string         `json:"uptime"`
	Discord     *DiscordStatus `json:"discord,omitempty"`
}
