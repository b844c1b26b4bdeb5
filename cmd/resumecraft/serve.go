package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/app"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/chat"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/config"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/generation"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes resume workspaces: generation, previews, exports and chat.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	client, err := newLLMClient(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	registry := newRegistry(client, cfg)

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Registry:  registry,
		RateLimit: cfg.RateLimitConfig(),
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// newRegistry builds workspaces that share one client, one deduplicating
// generator and one PDF renderer.
func newRegistry(client llm.Client, cfg config.Config) *app.Registry {
	extractor := generation.NewDeduper(generation.NewGenerator(client, cfg.GenerationOptions()))
	pdf := pdfRenderer(cfg)
	if pdf == nil {
		log.Printf("[server] Chrome not found; /resume.pdf will answer 503")
	}
	chatOpts := cfg.ChatOptions()

	return app.NewRegistry(func() (*app.Controller, error) {
		session, err := chat.Open(client, chatOpts)
		if err != nil {
			return nil, err
		}
		return app.NewController(extractor, session, pdf), nil
	}, cfg.SessionTTL.Std())
}
