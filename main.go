package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"faqbot/config"
	"faqbot/controllers"
	"faqbot/services"
	"faqbot/utils"
)

const shutdownTimeout = 10 * time.Second

// envFiles are the .env fallbacks shared by every subcommand
var envFiles = utils.DefaultEnvFiles

func main() {
	rootCmd := &cobra.Command{
		Use:          "faqbot",
		Short:        "FAQ chatbot API with LLM fallback and question escalation",
		SilenceUsage: true,
		RunE:         runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(faqsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (and the Discord bot when enabled)",
		RunE:  runServe,
	}
}

func faqsCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "faqs",
		Short: "Print the FAQ entries the server would answer from",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("file") {
				resolved, err := config.FAQFile(envFiles...)
				if err != nil {
					return err
				}
				file = resolved
			}

			faqs, err := loadFAQs(file)
			if err != nil {
				return err
			}
			return printFAQs(cmd.OutOrStdout(), faqs, asJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML FAQ file (defaults to FAQ_FILE, then the built-in set)")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnvFiles(envFiles...)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	logger := utils.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	faqs, err := loadFAQs(cfg.FAQFile)
	if err != nil {
		logger.Error("failed to load FAQs", "file", cfg.FAQFile, "error", err)
		return err
	}

	matcher, err := services.NewMatcher(cfg.MatchPolicy, faqs)
	if err != nil {
		return err
	}

	generator, err := services.NewAnswerGenerator(cfg.Provider)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	storeCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	store, err := services.OpenEscalationStore(storeCtx, cfg.Store)
	cancel()
	if err != nil {
		logger.Error("failed to open escalation store", "backend", cfg.Store.Backend, "error", err)
		return err
	}
	defer logClose(logger, "escalation store", store.Close)

	chatbot := services.NewChatbot(services.ChatbotDeps{
		FAQs:        faqs,
		Matcher:     matcher,
		Generator:   generator,
		Escalations: services.NewEscalationLogger(store, cfg.RequestTimeout, logger),
		Timeout:     cfg.RequestTimeout,
		Logger:      logger,
	})

	discord, err := services.NewDiscordService(chatbot, cfg.Discord, logger)
	if err != nil {
		return err
	}

	controller := controllers.NewController(chatbot, discord, logger)
	if err := controller.StartServices(); err != nil {
		return err
	}
	defer logClose(logger, "background services", controller.StopServices)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           controller.Routes(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "provider", cfg.Provider.Name, "store", store.Name())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
			return err
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited")
	return nil
}

// logClose runs a shutdown step and logs its failure
func logClose(logger *slog.Logger, what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("shutdown step failed", "component", what, "error", err)
		return
	}
	logger.Debug("shutdown step done", "component", what)
}

// loadFAQs reads the YAML FAQ file when one is configured, else the built-in set
func loadFAQs(path string) (*services.FAQStore, error) {
	if path == "" {
		return services.DefaultFAQStore(), nil
	}
	return services.LoadFAQFile(path)
}

func printFAQs(w io.Writer, faqs *services.FAQStore, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(faqs.Entries())
	}

	for i, entry := range faqs.Entries() {
		if _, err := fmt.Fprintf(w, "%d. Q: %s\n   A: %s\n\n", i+1, entry.Question, entry.Answer); err != nil {
			return err
		}
	}
	return nil
}
