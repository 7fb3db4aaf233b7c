package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nvhoang/jira-assistant/internal/common"
	"github.com/nvhoang/jira-assistant/internal/models"
)

// myTasksJQL is the fixed query behind the tasks_assigned_to_me intent.
const myTasksJQL = "assignee = currentUser() AND resolution = Unresolved ORDER BY updated DESC"

// SearchIssues extracts a JQL query from the utterance and runs it. Results
// always pass through the LLM issue formatter, including non-empty lists.
func (a *Assistant) SearchIssues(ctx context.Context, utterance string) Result {
	reply, err := a.llm.Complete(ctx, searchIssuesPrompt(utterance))
	if err != nil {
		return Failure(FailureLLM, apiErrorPrefix+err.Error())
	}

	details := common.ExtractJSON(reply)
	if details == nil {
		return Failuref(FailureExtraction, "Error: Failed to extract valid JSON from LLM response. Response: %s", reply)
	}

	jql, ok := common.GetStringValue(details, "jql_query")
	if !ok {
		return Failure(FailureValidation, "Error: No valid JQL query found in LLM response.")
	}

	issues, err := a.jira.SearchIssues(ctx, jql, a.cfg.SearchMaxResults)
	if err != nil {
		return Failuref(FailureREST, "Error searching for issues: %v", err)
	}
	if len(issues) == 0 {
		return Success("No issues found matching the query.")
	}

	return a.formatIssues(ctx, issues)
}

// TasksAssignedToMe lists the caller's unresolved issues with a fixed JQL
// query; no slots are extracted.
func (a *Assistant) TasksAssignedToMe(ctx context.Context) Result {
	issues, err := a.jira.SearchIssues(ctx, myTasksJQL, a.cfg.SearchMaxResults)
	if err != nil {
		return Failuref(FailureREST, "Error searching for issues: %v", err)
	}
	if len(issues) == 0 {
		return Success("No unresolved issues are currently assigned to you.")
	}

	return a.formatIssues(ctx, issues)
}

// AssignIssue resolves a free-text issue description and an assignee
// display name, then performs the assignment. Both resolution steps are
// single-shot and first-match-only; either missing link aborts before the
// assignment call.
func (a *Assistant) AssignIssue(ctx context.Context, utterance string) Result {
	reply, err := a.llm.Complete(ctx, assignIssuePrompt(utterance))
	if err != nil {
		return Failure(FailureLLM, apiErrorPrefix+err.Error())
	}

	details := common.ExtractJSON(reply)
	if details == nil {
		return Failuref(FailureExtraction, "Error: Failed to extract valid JSON from LLM response. Response: %s", reply)
	}

	issueDescription, okIssue := common.GetStringValue(details, "issue_description")
	assigneeName, okAssignee := common.GetStringValue(details, "assignee_name")
	if !okIssue || !okAssignee {
		return Failure(FailureValidation, "Error: Insufficient details in LLM response.")
	}

	jql := fmt.Sprintf("text ~ %q ORDER BY created DESC", issueDescription)
	issues, err := a.jira.SearchIssues(ctx, jql, 1)
	if err != nil {
		return Failuref(FailureREST, "Error searching for the issue to assign: %v", err)
	}
	if len(issues) == 0 {
		return Failure(FailureResolution, "Error: Could not identify the issue to assign from your description.")
	}
	issueKey := issues[0].Key

	user, err := a.jira.FindUser(ctx, assigneeName)
	if err != nil {
		return Failuref(FailureREST, "Error searching for user '%s': %v", assigneeName, err)
	}
	if user == nil {
		return Failuref(FailureResolution, "Error: Could not find a user named '%s'.", assigneeName)
	}

	if err := a.jira.AssignIssue(ctx, issueKey, user.AccountID); err != nil {
		return Failuref(FailureREST, "Error assigning issue: %v", err)
	}
	return Success(fmt.Sprintf("Issue '%s' assigned successfully to user '%s'.", issueKey, user.DisplayName))
}

// TransitionIssue extracts {issue_key, transition_id} and applies the
// transition. A non-numeric transition_id is resolved against the issue's
// available transitions by case-insensitive name, first match.
func (a *Assistant) TransitionIssue(ctx context.Context, utterance string) Result {
	reply, err := a.llm.Complete(ctx, transitionIssuePrompt(utterance))
	if err != nil {
		return Failure(FailureLLM, apiErrorPrefix+err.Error())
	}

	details := common.ExtractJSON(reply)
	if details == nil {
		return Failuref(FailureExtraction, "Error: Failed to extract valid JSON from LLM response. Response: %s", reply)
	}

	issueKey, okKey := common.GetStringValue(details, "issue_key")
	transitionID, okTransition := common.GetStringValue(details, "transition_id")
	if !okKey || !okTransition {
		return Failure(FailureValidation, "Error: Insufficient details in LLM response.")
	}

	if !isNumeric(transitionID) {
		resolved, res := a.resolveTransitionByName(ctx, issueKey, transitionID)
		if res.Failed() {
			return res
		}
		transitionID = resolved
	}

	if err := a.jira.TransitionIssue(ctx, issueKey, transitionID); err != nil {
		return Failuref(FailureREST, "Error transitioning issue: %v", err)
	}
	return Success(fmt.Sprintf("Issue '%s' transitioned successfully.", issueKey))
}

// AddAttachment extracts {issue_key, file_path} and uploads the file as an
// attachment.
func (a *Assistant) AddAttachment(ctx context.Context, utterance string) Result {
	reply, err := a.llm.Complete(ctx, addAttachmentPrompt(utterance))
	if err != nil {
		return Failure(FailureLLM, apiErrorPrefix+err.Error())
	}

	details := common.ExtractJSON(reply)
	if details == nil {
		return Failuref(FailureExtraction, "Error: Failed to extract valid JSON from LLM response. Response: %s", reply)
	}

	issueKey, okKey := common.GetStringValue(details, "issue_key")
	filePath, okPath := common.GetStringValue(details, "file_path")
	if !okKey || !okPath {
		return Failure(FailureValidation, "Error: Insufficient details in LLM response.")
	}

	if _, err := a.jira.AddAttachment(ctx, issueKey, filePath); err != nil {
		return Failuref(FailureREST, "Error adding attachment: %v", err)
	}
	return Success(fmt.Sprintf("Attachment added to issue '%s' successfully.", issueKey))
}

// resolveTransitionByName maps a target status name to a transition ID,
// case-insensitively, first match.
func (a *Assistant) resolveTransitionByName(ctx context.Context, issueKey, name string) (string, Result) {
	transitions, err := a.jira.GetTransitions(ctx, issueKey)
	if err != nil {
		return "", Failuref(FailureREST, "Error fetching transitions for issue '%s': %v", issueKey, err)
	}
	for _, t := range transitions {
		if strings.EqualFold(t.Name, name) {
			return t.ID, Result{}
		}
		if t.To != nil && strings.EqualFold(t.To.Name, name) {
			return t.ID, Result{}
		}
	}
	return "", Failuref(FailureResolution, "Error: No transition named '%s' is available on issue '%s'.", name, issueKey)
}

// formatIssues renders an issue list into prose via the LLM.
func (a *Assistant) formatIssues(ctx context.Context, issues []models.Issue) Result {
	issuesJSON, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return Failuref(FailureREST, "Error formatting issues: %v", err)
	}

	formatted, err := a.llm.Complete(ctx, formatIssuesPrompt(string(issuesJSON)))
	if err != nil {
		return Failure(FailureLLM, "Sorry, I couldn't format the issues. Please try again.")
	}
	return Success(formatted)
}

// isNumeric reports whether s consists solely of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
