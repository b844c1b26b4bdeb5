package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/chat"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/observability"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the AI career coach",
	Long: `Starts an interactive career-advice conversation. Type a message and press enter.
Commands: /history prints the recent transcript, /quit exits.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	session, err := chat.Open(client, cfg.ChatOptions())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	fmt.Fprintf(out, "Coach: %s\n", session.Transcript()[0].Text)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/history":
			printer.PrintTranscript(session.Transcript())
			continue
		}

		// A failed reply is already the scripted apology; show it and go on
		reply, err := session.Send(ctx, line)
		if err != nil && cfg.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "[chat] %v\n", err)
		}
		fmt.Fprintf(out, "Coach: %s\n", reply)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
