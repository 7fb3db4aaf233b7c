package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvhoang/jira-assistant/internal/a2a"
	"github.com/nvhoang/jira-assistant/internal/assistant"
	"github.com/nvhoang/jira-assistant/internal/config"
	"github.com/nvhoang/jira-assistant/internal/jira"
	"github.com/nvhoang/jira-assistant/internal/llm"
	log "github.com/nvhoang/jira-assistant/internal/logging"
	"github.com/nvhoang/jira-assistant/internal/server"
	"github.com/nvhoang/jira-assistant/internal/speech"
)

func main() {
	defer log.Sync()

	rootCmd := &cobra.Command{
		Use:   "assistant",
		Short: "Conversational assistant over the Jira REST API",
		Long: "assistant turns free-text requests into Jira operations: it classifies\n" +
			"intent with an LLM, extracts structured parameters, and performs exactly\n" +
			"one REST call per request.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd(), chatCmd(), a2aCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildAssistant wires configuration, the LLM client, and the Jira client
// into a dispatcher, verifying Jira credentials on the way (best effort).
func buildAssistant(ctx context.Context) (*config.Config, *assistant.Assistant, error) {
	cfg := config.NewConfig()

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	jiraClient := jira.NewClient(cfg)

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if name, err := jira.VerifyCredentials(verifyCtx, cfg); err != nil {
		log.Warnf("Jira credential check failed: %v", err)
	} else {
		log.Infof("Authenticated to Jira as %s", name)
	}

	return cfg, assistant.New(cfg, llmClient, jiraClient), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (POST /process-input)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, asst, err := buildAssistant(ctx)
			if err != nil {
				return err
			}

			return server.New(cfg, asst).Run(ctx)
		},
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, asst, err := buildAssistant(ctx)
			if err != nil {
				return err
			}

			return runChat(ctx, asst, speech.Disabled{}, os.Stdin, cmd.OutOrStdout())
		},
	}
}

func a2aCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "a2a",
		Short: "Expose the assistant as an A2A agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, asst, err := buildAssistant(ctx)
			if err != nil {
				return err
			}

			srv, err := a2a.SetupServer(cfg, a2a.NewProcessor(cfg, asst))
			if err != nil {
				return err
			}
			return a2a.StartServer(ctx, srv, cfg.ServerHost, cfg.ServerPort)
		},
	}
}

// runChat is the terminal REPL: one utterance per line, "exit" ends the
// loop, "voice" substitutes a transcribed utterance when a transcriber is
// available.
func runChat(ctx context.Context, asst *assistant.Assistant, transcriber speech.Transcriber, in *os.File, out interface{ Write([]byte) (int, error) }) error {
	fmt.Fprintln(out, "Chatbot is running in the terminal. Type 'exit' to quit or 'voice' to use voice input.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.EqualFold(input, "exit") {
			fmt.Fprintln(out, "Bot:", assistant.FarewellMessage)
			break
		}

		if strings.EqualFold(input, "voice") {
			transcription, err := transcriber.Transcribe(ctx)
			if err != nil {
				fmt.Fprintln(out, "Bot: Sorry, voice input is not available:", err)
				continue
			}
			input = speech.Clean(transcription)
			fmt.Fprintln(out, speech.Describe(input))
		}

		fmt.Fprintln(out, "Bot:", asst.HandleInput(ctx, input))
	}
	return scanner.Err()
}
