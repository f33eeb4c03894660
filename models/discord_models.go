package models

// DiscordConfig represents Discord front end configuration
type DiscordConfig struct {
	Enabled       bool   `json:"enabled"`
	Token         string `json:"-"`
	CommandPrefix string `json:"command_prefix"`
}

// DiscordStatus represents Discord front end status
type DiscordStatus struct {
	Enabled       bool         `json:"enabled"`
	State         string       `json:"state"`
	CommandPrefix string       `json:"command_prefix"`
	Uptime        string       `json:"uptime,omitempty"`
	User          *DiscordUser `json:"user,omitempty"`
	Guilds        int          `json:"guilds,omitempty"`
}

// DiscordUser represents the bot's Discord identity
type DiscordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
