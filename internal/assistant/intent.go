package assistant

import (
	"context"
	"strings"

	log "github.com/nvhoang/jira-assistant/internal/logging"
)

// Intent is one label from the closed classification set.
type Intent string

const (
	IntentCreateTask          Intent = "create_task"
	IntentGetIssueDetails     Intent = "get_issue_details"
	IntentUpdateIssue         Intent = "update_issue"
	IntentAddComment          Intent = "add_comment"
	IntentSearchIssues        Intent = "search_issues"
	IntentAssignIssue         Intent = "assign_issue"
	IntentTransitionIssue     Intent = "transition_issue"
	IntentAddAttachment       Intent = "add_attachment"
	IntentAskAboutSprint      Intent = "ask_about_sprint"
	IntentAskAboutSprintIssue Intent = "ask_about_sprint_issues"
	IntentTasksAssignedToMe   Intent = "tasks_assigned_to_me"
	IntentExit                Intent = "exit"
	IntentUnknown             Intent = "unknown"
)

// knownIntents is the closed set the classifier may produce. Anything the
// model returns outside this set is treated as unknown.
var knownIntents = map[Intent]struct{}{
	IntentCreateTask:          {},
	IntentGetIssueDetails:     {},
	IntentUpdateIssue:         {},
	IntentAddComment:          {},
	IntentSearchIssues:        {},
	IntentAssignIssue:         {},
	IntentTransitionIssue:     {},
	IntentAddAttachment:       {},
	IntentAskAboutSprint:      {},
	IntentAskAboutSprintIssue: {},
	IntentTasksAssignedToMe:   {},
	IntentExit:                {},
}

// intentPrefix is boilerplate some models prepend despite the prompt
// telling them not to.
const intentPrefix = "the intent of the user input is:"

// ParseIntent normalizes a raw model reply to an intent label: lowercased,
// trimmed, known boilerplate prefix stripped. Unrecognized labels map to
// IntentUnknown.
func ParseIntent(raw string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.TrimPrefix(normalized, intentPrefix)
	normalized = strings.Trim(normalized, " \t\n\"'.")

	if _, ok := knownIntents[Intent(normalized)]; ok {
		return Intent(normalized)
	}
	return IntentUnknown
}

// Classify determines the intent of an utterance with a single
// enumeration-style completion call.
func (a *Assistant) Classify(ctx context.Context, utterance string) (Intent, error) {
	reply, err := a.llm.Complete(ctx, intentPrompt(utterance))
	if err != nil {
		return IntentUnknown, err
	}

	intent := ParseIntent(reply)
	log.Debugf("Determined intent %q from reply %q", intent, reply)
	return intent, nil
}
