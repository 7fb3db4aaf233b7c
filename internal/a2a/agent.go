package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"trpc.group/trpc-go/trpc-a2a-go/protocol"
	"trpc.group/trpc-go/trpc-a2a-go/taskmanager"

	"github.com/nvhoang/jira-assistant/internal/assistant"
	"github.com/nvhoang/jira-assistant/internal/config"
	log "github.com/nvhoang/jira-assistant/internal/logging"
)

// Processor exposes the assistant dispatcher as an A2A task processor:
// one task carries one utterance and completes with one response message.
type Processor struct {
	cfg       *config.Config
	assistant *assistant.Assistant
}

// NewProcessor creates an A2A task processor over the assistant.
func NewProcessor(cfg *config.Config, asst *assistant.Assistant) *Processor {
	return &Processor{
		cfg:       cfg,
		assistant: asst,
	}
}

// Process implements the taskmanager.TaskProcessor interface.
func (p *Processor) Process(ctx context.Context, taskID string, message protocol.Message, handle taskmanager.TaskHandle) error {
	log.Infof("Received task %s", taskID)

	if err := handle.UpdateStatus(protocol.TaskState("processing"), nil); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	utterance, err := extractUtterance(message)
	if err != nil {
		return fmt.Errorf("failed to extract utterance: %w", err)
	}

	response := p.assistant.HandleInput(ctx, utterance)

	textPart := protocol.NewTextPart(response)
	responseMsg := &protocol.Message{
		Parts: []protocol.Part{textPart},
	}

	if err := handle.UpdateStatus(protocol.TaskState("completed"), responseMsg); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	log.Infof("Task %s completed", taskID)
	return nil
}

// extractUtterance pulls the user utterance out of a task message. Accepts
// a plain TextPart, a TextPart carrying a JSON {"input": ...} body, or a
// DataPart with the same shape.
func extractUtterance(message protocol.Message) (string, error) {
	if len(message.Parts) == 0 {
		return "", fmt.Errorf("message has no parts")
	}

	for _, part := range message.Parts {
		var dp *protocol.DataPart
		switch v := part.(type) {
		case protocol.DataPart:
			dp = &v
		case *protocol.DataPart:
			dp = v
		}
		if dp != nil && dp.Data != nil {
			raw, err := json.Marshal(dp.Data)
			if err != nil {
				continue
			}
			if input := inputFromJSON(raw); input != "" {
				return input, nil
			}
		}

		var tp *protocol.TextPart
		switch v := part.(type) {
		case protocol.TextPart:
			tp = &v
		case *protocol.TextPart:
			tp = v
		}
		if tp != nil {
			text := strings.TrimSpace(tp.Text)
			if text == "" {
				continue
			}
			// A JSON body may wrap the utterance in an "input" field.
			if strings.HasPrefix(text, "{") {
				if input := inputFromJSON([]byte(text)); input != "" {
					return input, nil
				}
			}
			return text, nil
		}
	}

	return "", fmt.Errorf("no utterance found in message")
}

// inputFromJSON decodes {"input": string}, returning "" on any mismatch.
func inputFromJSON(raw []byte) string {
	var payload struct {
		Input string `json:"input"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Input)
}
