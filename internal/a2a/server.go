package a2a

import (
	"context"
	"fmt"
	"time"

	"trpc.group/trpc-go/trpc-a2a-go/auth"
	"trpc.group/trpc-go/trpc-a2a-go/server"
	"trpc.group/trpc-go/trpc-a2a-go/taskmanager"

	"github.com/nvhoang/jira-assistant/internal/common"
	"github.com/nvhoang/jira-assistant/internal/config"
	log "github.com/nvhoang/jira-assistant/internal/logging"
)

// SetupServer creates an A2A server exposing the assistant processor, with
// JSON-RPC at the root and authentication per configuration.
func SetupServer(cfg *config.Config, processor *Processor) (*server.A2AServer, error) {
	agentCard := server.AgentCard{
		Name:        cfg.AgentName,
		Description: common.StringPtr("Conversational assistant over the Jira REST API"),
		URL:         cfg.AgentURL,
		Version:     cfg.AgentVersion,
		Provider: &server.AgentProvider{
			Organization: "Jira Assistant",
		},
		DefaultInputModes:  []string{"text", "data"},
		DefaultOutputModes: []string{"text"},
	}

	taskManager, err := taskmanager.NewMemoryTaskManager(processor)
	if err != nil {
		return nil, fmt.Errorf("failed to create task manager: %w", err)
	}

	serverOpts := []server.Option{
		// JSON-RPC at root so A2A clients POST to "/"
		server.WithJSONRPCEndpoint("/"),
		// LLM-backed tasks can be slow
		server.WithReadTimeout(2 * time.Minute),
		server.WithWriteTimeout(2 * time.Minute),
	}

	if cfg.AuthType != "" {
		var authProvider auth.Provider
		switch cfg.AuthType {
		case "jwt":
			log.Infof("Configuring JWT authentication for %s", cfg.AgentName)
			authProvider = auth.NewJWTAuthProvider(
				[]byte(cfg.JWTSecret),
				"", // audience (empty for any)
				"", // issuer (empty for any)
				24*time.Hour,
			)
		case "apikey":
			log.Infof("Configuring API key authentication for %s", cfg.AgentName)
			apiKeys := map[string]string{
				cfg.APIKey: "user",
			}
			authProvider = auth.NewAPIKeyAuthProvider(apiKeys, "X-API-Key")
		default:
			return nil, fmt.Errorf("unsupported auth type: %s", cfg.AuthType)
		}
		serverOpts = append(serverOpts, server.WithAuthProvider(authProvider))
	} else {
		log.Warnf("No authentication configured for %s, running unauthenticated", cfg.AgentName)
	}

	srv, err := server.NewA2AServer(agentCard, taskManager, serverOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}

// StartServer starts the A2A server and handles graceful shutdown when the
// context is canceled.
func StartServer(ctx context.Context, srv *server.A2AServer, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	go func() {
		log.Infof("Starting A2A server on %s", addr)
		if err := srv.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Infof("Shutting down A2A server...")
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
