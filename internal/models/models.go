package models

// Issue represents a Jira issue as returned by the search and sprint APIs.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self,omitempty"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the subset of issue fields the assistant reports on.
type IssueFields struct {
	Summary  string    `json:"summary"`
	Status   *Status   `json:"status,omitempty"`
	Assignee *User     `json:"assignee,omitempty"`
	Priority *Priority `json:"priority,omitempty"`
	Project  *Project  `json:"project,omitempty"`
}

// Status is an issue workflow status.
type Status struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Priority is an issue priority.
type Priority struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Project identifies the project an issue belongs to.
type Project struct {
	ID   string `json:"id,omitempty"`
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// User is a Jira user as returned by the user search API.
type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active,omitempty"`
}

// CreatedIssue is the response body of a successful issue creation.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// Comment is the response body of a successful comment creation.
type Comment struct {
	ID      string `json:"id"`
	Created string `json:"created"`
	URL     string `json:"url,omitempty"`
}

// Transition is one workflow transition available on an issue.
type Transition struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	To   *Status `json:"to,omitempty"`
}

// Attachment is one uploaded attachment.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType,omitempty"`
}

// Board is an agile board, resolved by exact name filter.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Sprint is an agile sprint on a board.
type Sprint struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Goal      string `json:"goal,omitempty"`
}

// SearchResult is the envelope of a JQL search response.
type SearchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// BoardList is the envelope of a board lookup response.
type BoardList struct {
	Values []Board `json:"values"`
}

// SprintList is the envelope of a sprint lookup response.
type SprintList struct {
	Values []Sprint `json:"values"`
}
