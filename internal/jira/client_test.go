package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvhoang/jira-assistant/internal/config"
	"github.com/nvhoang/jira-assistant/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.Config{
		JiraBaseURL:  srv.URL,
		JiraEmail:    "dev@example.com",
		JiraAPIToken: "token",
	})
}

func TestCreateIssue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/3/issue", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Basic "))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			Fields struct {
				Project struct {
					Key string `json:"key"`
				} `json:"project"`
				Summary     string              `json:"summary"`
				Description *models.ADFDocument `json:"description"`
				IssueType   struct {
					Name string `json:"name"`
				} `json:"issuetype"`
			} `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "PROJ", payload.Fields.Project.Key)
		assert.Equal(t, "Fix login", payload.Fields.Summary)
		assert.Equal(t, "Task", payload.Fields.IssueType.Name)
		require.NotNil(t, payload.Fields.Description)
		assert.Equal(t, 1, payload.Fields.Description.Version)
		assert.Equal(t, "doc", payload.Fields.Description.Type)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "10001", "key": "PROJ-42", "self": "https://example/rest/api/3/issue/10001"}`))
	})

	created, err := client.CreateIssue(context.Background(), "PROJ", "Fix login", models.ADFFromText("Crash on submit"))

	require.NoError(t, err)
	assert.Equal(t, "PROJ-42", created.Key)
}

func TestCreateIssueErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors": {"project": "project is required"}}`))
	})

	_, err := client.CreateIssue(context.Background(), "", "x", models.ADFFromText("y"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "project is required")
}

func TestSearchIssuesQueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/search", r.URL.Path)
		assert.Equal(t, "project = RA", r.URL.Query().Get("jql"))
		assert.Equal(t, "5", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "summary,assignee,priority,status,project", r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`{"total": 1, "issues": [{"key": "RA-1", "fields": {"summary": "Fix login"}}]}`))
	})

	issues, err := client.SearchIssues(context.Background(), "project = RA", 5)

	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "RA-1", issues[0].Key)
	assert.Equal(t, "Fix login", issues[0].Fields.Summary)
}

func TestUpdateIssueSendsFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/rest/api/3/issue/PROJ-7", r.URL.Path)
		var payload map[string]map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "New title", payload["fields"]["summary"])
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.UpdateIssue(context.Background(), "PROJ-7", map[string]interface{}{"summary": "New title"})

	assert.NoError(t, err)
}

func TestAddCommentBuildsBrowseURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/issue/PROJ-5/comment", r.URL.Path)
		var payload struct {
			Body *models.ADFDocument `json:"body"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.NotNil(t, payload.Body)
		assert.Equal(t, "ship it", payload.Body.Content[0].Content[0].Text)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "201", "created": "2026-08-28T10:00:00.000+0000"}`))
	})

	comment, err := client.AddComment(context.Background(), "PROJ-5", "ship it")

	require.NoError(t, err)
	assert.Equal(t, "201", comment.ID)
	assert.True(t, strings.HasSuffix(comment.URL, "/browse/PROJ-5?focusedCommentId=201"))
}

func TestAssignIssue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/rest/api/3/issue/RA-9/assignee", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "acc-1", payload["accountId"])
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.AssignIssue(context.Background(), "RA-9", "acc-1"))
}

func TestTransitionIssue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/issue/RA-2/transitions", r.URL.Path)
		var payload map[string]map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "31", payload["transition"]["id"])
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.TransitionIssue(context.Background(), "RA-2", "31"))
}

func TestFindUserExactCaseInsensitiveMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/user/search", r.URL.Path)
		assert.Equal(t, "John Doe", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`[
			{"accountId": "acc-0", "displayName": "John Doering"},
			{"accountId": "acc-1", "displayName": "john DOE"},
			{"accountId": "acc-2", "displayName": "John Doe"}
		]`))
	})

	user, err := client.FindUser(context.Background(), "John Doe")

	require.NoError(t, err)
	require.NotNil(t, user)
	// Substring hits do not count; the first exact match wins.
	assert.Equal(t, "acc-1", user.AccountID)
}

func TestFindUserNoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"accountId": "acc-0", "displayName": "John Doering"}]`))
	})

	user, err := client.FindUser(context.Background(), "John Doe")

	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAddAttachment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/issue/RA-4/attachments", r.URL.Path)
		assert.Equal(t, "no-check", r.Header.Get("X-Atlassian-Token"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.txt", header.Filename)

		_, _ = w.Write([]byte(`[{"id": "301", "filename": "report.txt", "size": 5}]`))
	})

	attachments, err := client.AddAttachment(context.Background(), "RA-4", path)

	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "report.txt", attachments[0].Filename)
}

func TestAddAttachmentMissingFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected when the file cannot be opened")
	})

	_, err := client.AddAttachment(context.Background(), "RA-4", "/nonexistent/report.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open attachment file")
}
