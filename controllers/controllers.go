package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"faqbot/services"
)

// Controller holds the HTTP handlers and the services behind them
type Controller struct {
	chatbot        *services.Chatbot
	discordService *services.DiscordService
	logger         *slog.Logger
}

// NewController creates a new controller instance. discordService may be nil.
func NewController(chatbot *services.Chatbot, discordService *services.DiscordService, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		chatbot:        chatbot,
		discordService: discordService,
		logger:         logger,
	}
}

// StartServices starts all background services (Discord bot, etc.)
func (c *Controller) StartServices() error {
	if c.discordService == nil || !c.discordService.IsEnabled() {
		c.logger.Info("discord service disabled")
		return nil
	}

	if err := c.discordService.Start(); err != nil {
		c.logger.Error("failed to start Discord service", "error", err)
		return err
	}
	return nil
}

// StopServices stops all background services
func (c *Controller) StopServices() error {
	if c.discordService != nil {
		return c.discordService.Stop()
	}
	return nil
}

// Routes builds the router wrapped in the CORS handler
func (c *Controller) Routes(corsOrigins []string) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", c.IndexHandler).Methods(http.MethodGet)
	router.HandleFunc("/chat", c.ChatHandler).Methods(http.MethodPost)
	router.HandleFunc("/escalations", c.EscalationsHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", c.HealthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return corsHandler.Handler(router)
}
