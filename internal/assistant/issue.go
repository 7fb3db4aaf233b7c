package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nvhoang/jira-assistant/internal/common"
	"github.com/nvhoang/jira-assistant/internal/models"
)

// CreateTask extracts {project_key, summary, description} from the
// utterance via the LLM and creates a Task-type issue. Validation fails
// closed: any missing or blank slot rejects the whole request before the
// network call.
func (a *Assistant) CreateTask(ctx context.Context, utterance string) Result {
	reply, err := a.llm.Complete(ctx, createTaskPrompt(utterance))
	if err != nil {
		return Failure(FailureLLM, apiErrorPrefix+err.Error())
	}

	details := common.ExtractJSON(reply)
	if details == nil {
		return Failuref(FailureExtraction, "Error: Failed to extract valid JSON from LLM response. Response: %s", reply)
	}

	projectKey, okProject := common.GetStringValue(details, "project_key")
	summary, okSummary := common.GetStringValue(details, "summary")
	description, okDescription := common.GetStringValue(details, "description")
	if !okProject || !okSummary || !okDescription {
		return Failure(FailureValidation, "Error: Insufficient or invalid task details in LLM response.")
	}

	created, err := a.jira.CreateIssue(ctx, projectKey, summary, models.ADFFromText(description))
	if err != nil {
		return Failuref(FailureREST, "Error creating Jira issue: %v", err)
	}

	return Success(fmt.Sprintf("Jira issue created successfully: %s", created.Key))
}

// GetIssueDetails reads an issue whose key is taken from the utterance by
// regex, not by the LLM. Two identical requests perform two independent
// reads; nothing is cached.
func (a *Assistant) GetIssueDetails(ctx context.Context, utterance string) Result {
	issueKey := extractIssueKey(utterance)
	if issueKey == "" {
		return Failure(FailureValidation, missingIssueKeyMessage)
	}

	raw, err := a.jira.GetIssue(ctx, issueKey)
	if err != nil {
		return Failuref(FailureREST, "Error retrieving issue details: %v", err)
	}

	pretty, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return Failuref(FailureREST, "Error formatting issue details: %v", err)
	}
	return Success(fmt.Sprintf("Issue details: %s", pretty))
}

// UpdateIssue extracts {summary, description} and updates the issue named
// by the key in the utterance. At least one of the two slots must be
// present; the description is converted to ADF.
func (a *Assistant) UpdateIssue(ctx context.Context, utterance string) Result {
	issueKey := extractIssueKey(utterance)
	if issueKey == "" {
		return Failure(FailureValidation, missingIssueKeyMessage)
	}

	reply, err := a.llm.Complete(ctx, updateIssuePrompt(utterance))
	if err != nil {
		return Failure(FailureLLM, apiErrorPrefix+err.Error())
	}

	details := common.ExtractJSON(reply)
	if details == nil {
		return Failuref(FailureExtraction, "Error: Failed to extract valid JSON from LLM response. Response: %s", reply)
	}

	summary, okSummary := common.GetStringValue(details, "summary")
	description, okDescription := common.GetStringValue(details, "description")
	if !okSummary && !okDescription {
		return Failure(FailureValidation, "Error: No valid fields to update in LLM response.")
	}

	fields := make(map[string]interface{})
	if okSummary {
		fields["summary"] = summary
	}
	if okDescription {
		fields["description"] = models.ADFFromText(description)
	}

	if err := a.jira.UpdateIssue(ctx, issueKey, fields); err != nil {
		return Failuref(FailureREST, "Error updating Jira issue: %v", err)
	}
	return Success(fmt.Sprintf("Issue '%s' updated successfully.", issueKey))
}

// AddComment posts the text after the first colon in the utterance as a
// comment on the issue named by the key in the utterance.
func (a *Assistant) AddComment(ctx context.Context, utterance string) Result {
	issueKey := extractIssueKey(utterance)
	if issueKey == "" {
		return Failure(FailureValidation, missingIssueKeyMessage)
	}

	comment := extractComment(utterance)
	created, err := a.jira.AddComment(ctx, issueKey, comment)
	if err != nil {
		return Failuref(FailureREST, "Error adding comment to Jira issue: %v", err)
	}

	return Success(fmt.Sprintf("Comment added to issue '%s' successfully: %s", issueKey, created.URL))
}
