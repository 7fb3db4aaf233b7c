package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nvhoang/jira-assistant/internal/models"
)

// AskAboutSprint answers a general sprint question: project name from the
// utterance, board by name, all sprints on the board, then an LLM-generated
// insights summary.
func (a *Assistant) AskAboutSprint(ctx context.Context, utterance string) Result {
	projectName := extractProjectName(utterance)
	if projectName == "" {
		return Failure(FailureValidation, "Error: Could not extract a valid project name from the input.")
	}

	board, err := a.jira.FindBoard(ctx, projectName)
	if err != nil {
		return Failuref(FailureREST, "Error while finding board: %v", err)
	}
	if board == nil {
		return Failuref(FailureResolution, "Error: No board found for the project '%s'.", projectName)
	}

	sprints, err := a.jira.GetSprints(ctx, board.ID)
	if err != nil {
		return Failuref(FailureREST, "Error fetching sprints: %v", err)
	}
	if len(sprints) == 0 {
		return Failuref(FailureResolution, "No sprints available for the board linked to the project '%s'.", projectName)
	}

	sprintsJSON, err := json.MarshalIndent(sprints, "", "  ")
	if err != nil {
		return Failuref(FailureREST, "Error formatting sprints: %v", err)
	}

	insights, err := a.llm.Complete(ctx, sprintInsightsPrompt(projectName, string(sprintsJSON)))
	if err != nil {
		return Failure(FailureLLM, apiErrorPrefix+err.Error())
	}
	return Success(insights)
}

// AskAboutSprintIssues walks the full resolution chain: project name and
// sprint state from the utterance, state mapping, board, first matching
// sprint, its issues, then a fixed bullet report. Every missing link
// terminates with its own distinct error so the failing step is diagnosable
// from the message alone. The state mapping is checked before any board or
// sprint call.
func (a *Assistant) AskAboutSprintIssues(ctx context.Context, utterance string) Result {
	projectName := extractProjectName(utterance)
	if projectName == "" {
		return Failure(FailureValidation, "Error: No project name or ID found in your input.")
	}

	state := extractSprintState(utterance)
	if state == "" {
		return Failure(FailureValidation, "Error: No sprint state specified (e.g., current, future, past).")
	}

	jiraState, ok := mapSprintState(state)
	if !ok {
		return Failuref(FailureValidation, "Error: Invalid sprint state '%s'. Valid states are: current, future, past.", state)
	}

	board, err := a.jira.FindBoard(ctx, projectName)
	if err != nil {
		return Failuref(FailureREST, "Error while finding board: %v", err)
	}
	if board == nil {
		return Failuref(FailureResolution, "Error: No board found for the project '%s'.", projectName)
	}

	sprints, err := a.jira.GetSprintsByState(ctx, board.ID, jiraState)
	if err != nil {
		return Failuref(FailureREST, "Error fetching sprints: %v", err)
	}
	if len(sprints) == 0 {
		return Failuref(FailureResolution, "No %s sprints found for project '%s'.", state, projectName)
	}

	// First sprint is taken as the most relevant; Jira returns them ordered.
	sprint := sprints[0]
	if sprint.ID == 0 {
		return Failuref(FailureResolution, "Error: Could not retrieve sprint ID for the sprint '%s'.", sprint.Name)
	}

	issues, err := a.jira.GetSprintIssues(ctx, board.ID, sprint.ID)
	if err != nil {
		return Failuref(FailureREST, "Error fetching sprint issues: %v", err)
	}
	if len(issues) == 0 {
		return Failuref(FailureResolution, "No issues found in sprint '%s' (%s).", sprint.Name, state)
	}

	return Success(formatSprintIssues(sprint.Name, state, issues))
}

// formatSprintIssues renders the fixed bullet report for a sprint's issues.
func formatSprintIssues(sprintName, state string, issues []models.Issue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Issues in sprint '%s' (%s):\n", sprintName, state)
	for _, issue := range issues {
		assignee := "Unassigned"
		if issue.Fields.Assignee != nil && issue.Fields.Assignee.DisplayName != "" {
			assignee = issue.Fields.Assignee.DisplayName
		}
		status := "Unknown"
		if issue.Fields.Status != nil && issue.Fields.Status.Name != "" {
			status = issue.Fields.Status.Name
		}
		priority := "None"
		if issue.Fields.Priority != nil && issue.Fields.Priority.Name != "" {
			priority = issue.Fields.Priority.Name
		}
		fmt.Fprintf(&sb, "- %s: %s (Assignee: %s, Status: %s, Priority: %s)\n",
			issue.Key, issue.Fields.Summary, assignee, status, priority)
	}
	return strings.TrimRight(sb.String(), "\n")
}
