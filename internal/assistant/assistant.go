package assistant

import (
	"context"
	"regexp"
	"strings"

	"github.com/nvhoang/jira-assistant/internal/config"
	"github.com/nvhoang/jira-assistant/internal/jira"
	"github.com/nvhoang/jira-assistant/internal/llm"
	log "github.com/nvhoang/jira-assistant/internal/logging"
)

// Fixed user-facing strings of the dispatcher.
const (
	// FarewellMessage is returned for the exit intent, with no side effects.
	FarewellMessage = "Thank you for using the Jira Assistant. Goodbye!"
	// FallbackMessage is returned when no intent matches.
	FallbackMessage = "Sorry, I didn't understand that. Please try again."

	missingIssueKeyMessage = "Please specify an issue key (e.g., PROJ-123)."
	apiErrorPrefix         = "API Error: "
)

var (
	// issueKeyRegex matches tracker-style issue keys like PROJ-123.
	issueKeyRegex = regexp.MustCompile(`[A-Z]{2,}-\d+`)
	// commentRegex captures the comment text after the first colon.
	commentRegex = regexp.MustCompile(`:\s*(.+)`)
)

// Assistant turns free-text utterances into single Jira REST operations.
// It holds no mutable state and is safe to invoke concurrently from
// independent requests.
type Assistant struct {
	cfg  *config.Config
	llm  llm.Client
	jira jira.API
}

// New creates an assistant over the given completion client and Jira API.
func New(cfg *config.Config, llmClient llm.Client, jiraClient jira.API) *Assistant {
	return &Assistant{
		cfg:  cfg,
		llm:  llmClient,
		jira: jiraClient,
	}
}

// HandleInput processes one utterance start to finish and returns the
// user-facing response. One utterance, one response, no interleaving.
func (a *Assistant) HandleInput(ctx context.Context, utterance string) string {
	intent, err := a.Classify(ctx, utterance)
	if err != nil {
		log.Errorf("Intent classification failed: %v", err)
		return apiErrorPrefix + err.Error()
	}

	log.Infof("Dispatching intent %q", intent)

	switch intent {
	case IntentCreateTask:
		return a.CreateTask(ctx, utterance).Message
	case IntentGetIssueDetails:
		return a.GetIssueDetails(ctx, utterance).Message
	case IntentUpdateIssue:
		return a.UpdateIssue(ctx, utterance).Message
	case IntentAddComment:
		return a.AddComment(ctx, utterance).Message
	case IntentSearchIssues:
		return a.SearchIssues(ctx, utterance).Message
	case IntentAssignIssue:
		return a.AssignIssue(ctx, utterance).Message
	case IntentTransitionIssue:
		return a.TransitionIssue(ctx, utterance).Message
	case IntentAddAttachment:
		return a.AddAttachment(ctx, utterance).Message
	case IntentAskAboutSprint:
		return a.AskAboutSprint(ctx, utterance).Message
	case IntentAskAboutSprintIssue:
		return a.AskAboutSprintIssues(ctx, utterance).Message
	case IntentTasksAssignedToMe:
		return a.TasksAssignedToMe(ctx).Message
	case IntentExit:
		return FarewellMessage
	default:
		return FallbackMessage
	}
}

// extractIssueKey pulls the first issue key (e.g. PROJ-123) out of an
// utterance, or returns "".
func extractIssueKey(utterance string) string {
	return issueKeyRegex.FindString(utterance)
}

// extractComment pulls the comment text following the first colon, falling
// back to the whole utterance.
func extractComment(utterance string) string {
	if m := commentRegex.FindStringSubmatch(utterance); m != nil {
		return strings.TrimSpace(m[1])
	}
	return utterance
}

// extractProjectName finds the token immediately following the literal word
// "project" or "id" in the utterance, with surrounding punctuation stripped.
func extractProjectName(utterance string) string {
	words := strings.Fields(utterance)
	for i, word := range words {
		switch strings.ToLower(word) {
		case "project", "id":
			if i+1 < len(words) {
				return strings.Trim(words[i+1], `",.?!`)
			}
		}
	}
	return ""
}

// extractSprintState scans the utterance for one of the user-facing sprint
// states, or returns "".
func extractSprintState(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, state := range []string{"current", "future", "past"} {
		if strings.Contains(lower, state) {
			return state
		}
	}
	return ""
}

// mapSprintState maps a user-facing sprint state to Jira's sprint state.
func mapSprintState(state string) (string, bool) {
	mapping := map[string]string{
		"current": "active",
		"future":  "future",
		"past":    "closed",
	}
	jiraState, ok := mapping[state]
	return jiraState, ok
}
