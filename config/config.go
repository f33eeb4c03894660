package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"faqbot/models"
	"faqbot/utils"
)

// Provider names accepted by LLM_PROVIDER
const (
	ProviderOpenAI           = "openai"
	ProviderOpenAICompletion = "openai-completion"
	ProviderAzureOpenAI      = "azure-openai"
	ProviderOllama           = "ollama"
)

// Match policies accepted by MATCH_POLICY
const (
	PolicyContainment = "containment"
	PolicyPrompt      = "prompt"
)

// Escalation store backends accepted by STORE_BACKEND
const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
)

const (
	keyPort            = "PORT"
	keyProvider        = "LLM_PROVIDER"
	keyOpenAIKey       = "OPENAI_API_KEY"
	keyOpenAIBaseURL   = "OPENAI_BASE_URL"
	keyOpenAIModel     = "OPENAI_MODEL"
	keyAzureKey        = "AZURE_OPENAI_API_KEY"
	keyAzureEndpoint   = "AZURE_OPENAI_ENDPOINT"
	keyAzureDeployment = "AZURE_OPENAI_DEPLOYMENT"
	keyOllamaBaseURL   = "OLLAMA_BASE_URL"
	keyOllamaModel     = "OLLAMA_MODEL"
	keyMatchPolicy     = "MATCH_POLICY"
	keyFAQFile         = "FAQ_FILE"
	keyStoreBackend    = "STORE_BACKEND"
	keyCredentialsPath = "FIREBASE_CREDENTIALS_PATH"
	keyDatabaseURL     = "DATABASE_URL"
	keySQLitePath      = "SQLITE_PATH"
	keyCollection      = "ESCALATION_COLLECTION"
	keyRequestTimeout  = "REQUEST_TIMEOUT"
	keyCORSOrigins     = "CORS_ORIGINS"
	keyEnableDiscord   = "ENABLE_DISCORD"
	keyDiscordToken    = "DISCORD_BOT_TOKEN"
	keyDiscordPrefix   = "DISCORD_COMMAND_PREFIX"
	keyLogLevel        = "LOG_LEVEL"
	keyLogFormat       = "LOG_FORMAT"
)

const (
	defaultOpenAIURL     = "https://api.openai.com/v1"
	defaultChatModel     = "gpt-3.5-turbo"
	defaultInstructModel = "gpt-3.5-turbo-instruct"
)

// Config holds all application configuration
type Config struct {
	Port           string
	RequestTimeout time.Duration
	CORSOrigins    []string
	MatchPolicy    string
	FAQFile        string
	LogLevel       string
	LogFormat      string

	Provider ProviderConfig
	Store    StoreConfig
	Discord  models.DiscordConfig
}

// ProviderConfig selects and configures the answer generator backend.
// For azure-openai, BaseURL is the resource endpoint and Model the deployment.
type ProviderConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

// StoreConfig selects and configures the escalation store
type StoreConfig struct {
	Backend         string
	Collection      string
	CredentialsPath string
	Credentials     []byte
	DatabaseURL     string
	SQLitePath      string
}

// Load reads configuration from the environment, falling back to the first
// .env file found in the default locations.
func Load() (*Config, error) {
	return LoadWithEnvFiles(utils.DefaultEnvFiles...)
}

// LoadWithEnvFiles is Load with explicit .env locations
func LoadWithEnvFiles(envFiles ...string) (*Config, error) {
	v, err := newViper(envFiles)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           strings.TrimPrefix(v.GetString(keyPort), ":"),
		RequestTimeout: v.GetDuration(keyRequestTimeout),
		CORSOrigins:    splitList(v.GetString(keyCORSOrigins)),
		MatchPolicy:    strings.ToLower(v.GetString(keyMatchPolicy)),
		FAQFile:        v.GetString(keyFAQFile),
		LogLevel:       v.GetString(keyLogLevel),
		LogFormat:      v.GetString(keyLogFormat),
		Provider:       providerConfig(v),
		Store: StoreConfig{
			Backend:         strings.ToLower(v.GetString(keyStoreBackend)),
			Collection:      v.GetString(keyCollection),
			CredentialsPath: v.GetString(keyCredentialsPath),
			DatabaseURL:     v.GetString(keyDatabaseURL),
			SQLitePath:      v.GetString(keySQLitePath),
		},
		Discord: models.DiscordConfig{
			Enabled:       v.GetBool(keyEnableDiscord),
			Token:         v.GetString(keyDiscordToken),
			CommandPrefix: v.GetString(keyDiscordPrefix),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Store.Backend == BackendFirestore {
		creds, err := ReadCredentials(cfg.Store.CredentialsPath)
		if err != nil {
			return nil, err
		}
		cfg.Store.Credentials = creds
	}

	return cfg, nil
}

// FAQFile resolves FAQ_FILE from the environment and .env files without
// validating the rest of the configuration.
func FAQFile(envFiles ...string) (string, error) {
	v, err := newViper(envFiles)
	if err != nil {
		return "", err
	}
	return v.GetString(keyFAQFile), nil
}

// newViper layers the process environment over the first .env file found
func newViper(envFiles []string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if _, err := utils.LoadEnvFile(v, envFiles...); err != nil {
		return nil, &ConfigError{Key: "env file", Err: err}
	}
	v.AutomaticEnv()
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPort, "5000")
	v.SetDefault(keyProvider, ProviderOpenAI)
	v.SetDefault(keyOpenAIBaseURL, defaultOpenAIURL)
	v.SetDefault(keyOllamaBaseURL, "http://localhost:11434")
	v.SetDefault(keyOllamaModel, "llama3.2")
	v.SetDefault(keyMatchPolicy, PolicyContainment)
	v.SetDefault(keyStoreBackend, BackendFirestore)
	v.SetDefault(keyCredentialsPath, DefaultCredentialsPath)
	v.SetDefault(keySQLitePath, "data/escalations.db")
	v.SetDefault(keyCollection, "unanswered_questions")
	v.SetDefault(keyRequestTimeout, "30s")
	v.SetDefault(keyCORSOrigins, "*")
	v.SetDefault(keyEnableDiscord, false)
	v.SetDefault(keyDiscordPrefix, "!ask ")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
}

func providerConfig(v *viper.Viper) ProviderConfig {
	name := strings.ToLower(v.GetString(keyProvider))

	switch name {
	case ProviderAzureOpenAI:
		return ProviderConfig{
			Name:    name,
			APIKey:  v.GetString(keyAzureKey),
			BaseURL: v.GetString(keyAzureEndpoint),
			Model:   v.GetString(keyAzureDeployment),
		}
	case ProviderOllama:
		return ProviderConfig{
			Name:    name,
			BaseURL: v.GetString(keyOllamaBaseURL),
			Model:   v.GetString(keyOllamaModel),
		}
	}

	model := v.GetString(keyOpenAIModel)
	if model == "" {
		model = defaultChatModel
		if name == ProviderOpenAICompletion {
			model = defaultInstructModel
		}
	}

	return ProviderConfig{
		Name:    name,
		APIKey:  v.GetString(keyOpenAIKey),
		BaseURL: v.GetString(keyOpenAIBaseURL),
		Model:   model,
	}
}

// Validate checks every setting that would otherwise fail at first use
func (c *Config) Validate() error {
	if c.Port == "" {
		return configErr(keyPort, "must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return configErr(keyRequestTimeout, "must be a positive duration, got %s", c.RequestTimeout)
	}

	switch c.MatchPolicy {
	case PolicyContainment, PolicyPrompt:
	default:
		return configErr(keyMatchPolicy, "unknown policy %q", c.MatchPolicy)
	}

	if err := c.Provider.validate(); err != nil {
		return err
	}

	switch c.Store.Backend {
	case BackendFirestore:
		if c.Store.CredentialsPath == "" {
			return configErr(keyCredentialsPath, "must not be empty")
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return configErr(keyDatabaseURL, "required for the postgres store")
		}
		if err := validatePostgresURL(c.Store.DatabaseURL); err != nil {
			return &ConfigError{Key: keyDatabaseURL, Err: err}
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return configErr(keySQLitePath, "required for the sqlite store")
		}
	default:
		return configErr(keyStoreBackend, "unknown backend %q", c.Store.Backend)
	}
	if c.Store.Collection == "" {
		return configErr(keyCollection, "must not be empty")
	}

	if c.Discord.Enabled && c.Discord.Token == "" {
		return configErr(keyDiscordToken, "required when %s is set", keyEnableDiscord)
	}

	return nil
}

func (p ProviderConfig) validate() error {
	switch p.Name {
	case ProviderOpenAI, ProviderOpenAICompletion:
		if p.APIKey == "" {
			return configErr(keyOpenAIKey, "required for provider %s", p.Name)
		}
	case ProviderAzureOpenAI:
		if p.APIKey == "" {
			return configErr(keyAzureKey, "required for provider %s", p.Name)
		}
		if p.BaseURL == "" {
			return configErr(keyAzureEndpoint, "required for provider %s", p.Name)
		}
		if p.Model == "" {
			return configErr(keyAzureDeployment, "required for provider %s", p.Name)
		}
	case ProviderOllama:
		if p.BaseURL == "" {
			return configErr(keyOllamaBaseURL, "required for provider %s", p.Name)
		}
	default:
		return configErr(keyProvider, "unknown provider %q", p.Name)
	}
	return nil
}

// validatePostgresURL requires the URL form; migrations cannot use a
// key/value DSN even though the pool accepts one.
func validatePostgresURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("must be a postgres:// URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return errors.New("must be a postgres:// or postgresql:// URL, not a key/value DSN")
	}
	return nil
}

// Addr returns the listen address for the configured port
func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
