package assistant

import "fmt"

// The prompts below embed the raw utterance and, for slot extraction, an
// example of the desired JSON shape. Replies are parsed with the greedy
// brace-span heuristic in internal/common, so the prompts insist on a
// single JSON object and nothing else.

func intentPrompt(utterance string) string {
	return fmt.Sprintf(`Determine the intent of the following user input. Choose from:
- create_task
- get_issue_details
- update_issue
- add_comment
- search_issues
- assign_issue
- transition_issue
- add_attachment
- ask_about_sprint
- ask_about_sprint_issues
- tasks_assigned_to_me
- exit

Important:
- Return only the intent (e.g., "create_task") without additional text.
- Do not include any explanations or prefixes like "the intent of the user input is:".

User input: %s`, utterance)
}

func createTaskPrompt(utterance string) string {
	return fmt.Sprintf(`You are a Jira assistant. Your task is to create a Jira issue based on the user's request.
The user has provided the following input:

User request: %s

Based on this input, generate the following details for the Jira issue:
1. A concise and clear summary (maximum 10 words).
2. A detailed description of the task (1-2 sentences).

Return the details in the following JSON format and nothing else:
{
    "project_key": "PROJ",
    "summary": "A concise summary of the task",
    "description": "A detailed description of the task"
}

Example:
{
    "project_key": "PROJ",
    "summary": "Implement search functionality",
    "description": "Develop a search feature for the application to allow users to find content quickly and efficiently."
}

Now, generate the JSON for the user's request.`, utterance)
}

func updateIssuePrompt(utterance string) string {
	return fmt.Sprintf(`Extract the following details from the user request and return them as a single valid JSON object and nothing else:
{
    "summary": "Update search functionality",
    "description": "Enhance the search feature for better performance"
}

User request: %s`, utterance)
}

func searchIssuesPrompt(utterance string) string {
	return fmt.Sprintf(`Extract the following details from the user request and return them as a single valid JSON object and nothing else:
{
    "jql_query": "project = PROJ AND status = 'In Progress'"
}

User request: %s`, utterance)
}

func assignIssuePrompt(utterance string) string {
	return fmt.Sprintf(`Extract the following details from the user request and return them as a single valid JSON object and nothing else:
{
    "issue_description": "the login page crash",
    "assignee_name": "John Doe"
}

User request: %s`, utterance)
}

func transitionIssuePrompt(utterance string) string {
	return fmt.Sprintf(`Extract the following details from the user request and return them as a single valid JSON object and nothing else.
The transition_id may be a numeric transition ID or the name of the target status (e.g., "Done").
{
    "issue_key": "PROJ-123",
    "transition_id": "21"
}

User request: %s`, utterance)
}

func addAttachmentPrompt(utterance string) string {
	return fmt.Sprintf(`Extract the following details from the user request and return them as a single valid JSON object and nothing else:
{
    "issue_key": "PROJ-123",
    "file_path": "/path/to/file.txt"
}

User request: %s`, utterance)
}

func formatIssuesPrompt(issuesJSON string) string {
	return fmt.Sprintf(`You are a Jira assistant. Your task is to format a list of issues into a human-readable response for the user. The issues are provided in JSON format below:

Issues:
%s

Format the issues into a conversational response. Include the following details for each issue:
- Key (e.g., RA-123)
- Summary
- Assignee (if available)
- Status
- Priority (if available)

Example response:
"Here are the issues:
1. RA-123: Fix login bug (Assignee: John Doe, Status: Open, Priority: High)
2. RA-456: Update documentation (Assignee: Jane Smith, Status: In Progress, Priority: Medium)"

Now, generate the response for the provided issues.`, issuesJSON)
}

func sprintInsightsPrompt(projectName, sprintsJSON string) string {
	return fmt.Sprintf(`You are a Jira assistant. The following sprints belong to the board of project '%s', in JSON format:

Sprints:
%s

Summarize these sprints for the user in a short conversational response. Mention each sprint's name, state, and goal (if available), and note which sprint is currently active.`, projectName, sprintsJSON)
}
