package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nvhoang/jira-assistant/internal/config"
	"github.com/nvhoang/jira-assistant/internal/models"
)

// Client is a Jira Cloud REST API client (v3 + agile 1.0). Every method
// performs exactly one HTTP call and surfaces non-2xx responses as an error
// carrying the status code and body.
type Client struct {
	config     *config.Config
	httpClient *http.Client
}

// NewClient creates a new Jira client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}

// CreateIssue creates a Task-type issue in the given project. The
// description must already be in Atlassian Document Format.
func (c *Client) CreateIssue(ctx context.Context, projectKey, summary string, description *models.ADFDocument) (*models.CreatedIssue, error) {
	payload := map[string]interface{}{
		"fields": map[string]interface{}{
			"project":     map[string]string{"key": projectKey},
			"summary":     summary,
			"description": description,
			"issuetype":   map[string]string{"name": "Task"},
		},
	}

	body, err := c.do(ctx, http.MethodPost, c.apiURL("issue"), payload, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var created models.CreatedIssue
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode created issue: %w", err)
	}
	return &created, nil
}

// GetIssue fetches an issue by key and returns the raw field map.
func (c *Client) GetIssue(ctx context.Context, issueKey string) (map[string]interface{}, error) {
	body, err := c.do(ctx, http.MethodGet, c.apiURL("issue/"+issueKey), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal issue: %w", err)
	}
	return raw, nil
}

// UpdateIssue updates fields on an existing issue. Jira replies 204 on success.
func (c *Client) UpdateIssue(ctx context.Context, issueKey string, fields map[string]interface{}) error {
	payload := map[string]interface{}{"fields": fields}
	_, err := c.do(ctx, http.MethodPut, c.apiURL("issue/"+issueKey), payload, http.StatusNoContent)
	return err
}

// AddComment posts a plain-text comment, wrapped in ADF, to an issue.
func (c *Client) AddComment(ctx context.Context, issueKey, comment string) (*models.Comment, error) {
	payload := map[string]interface{}{
		"body": models.ADFFromText(comment),
	}

	body, err := c.do(ctx, http.MethodPost, c.apiURL("issue/"+issueKey+"/comment"), payload, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var created models.Comment
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode comment: %w", err)
	}
	created.URL = fmt.Sprintf("%s/browse/%s?focusedCommentId=%s", c.config.JiraBaseURL, issueKey, created.ID)
	return &created, nil
}

// SearchIssues executes a JQL query and returns the matching issues.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]models.Issue, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("fields", "summary,assignee,priority,status,project")

	body, err := c.do(ctx, http.MethodGet, c.apiURL("search")+"?"+q.Encode(), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var result models.SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search result: %w", err)
	}
	return result.Issues, nil
}

// AssignIssue assigns an issue to the user with the given account ID.
func (c *Client) AssignIssue(ctx context.Context, issueKey, accountID string) error {
	payload := map[string]string{"accountId": accountID}
	_, err := c.do(ctx, http.MethodPut, c.apiURL("issue/"+issueKey+"/assignee"), payload, http.StatusNoContent)
	return err
}

// GetTransitions lists the workflow transitions currently available on an issue.
func (c *Client) GetTransitions(ctx context.Context, issueKey string) ([]models.Transition, error) {
	body, err := c.do(ctx, http.MethodGet, c.apiURL("issue/"+issueKey+"/transitions"), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var result struct {
		Transitions []models.Transition `json:"transitions"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode transitions: %w", err)
	}
	return result.Transitions, nil
}

// TransitionIssue applies a workflow transition by ID.
func (c *Client) TransitionIssue(ctx context.Context, issueKey, transitionID string) error {
	payload := map[string]interface{}{
		"transition": map[string]string{"id": transitionID},
	}
	_, err := c.do(ctx, http.MethodPost, c.apiURL("issue/"+issueKey+"/transitions"), payload, http.StatusNoContent)
	return err
}

// AddAttachment uploads a local file as an issue attachment via multipart
// form data. Jira requires the X-Atlassian-Token: no-check header here.
func (c *Client) AddAttachment(ctx context.Context, issueKey, filePath string) ([]models.Attachment, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("issue/"+issueKey+"/attachments"), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Atlassian-Token", "no-check")
	c.addAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attachment upload failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var attachments []models.Attachment
	if err := json.Unmarshal(body, &attachments); err != nil {
		return nil, fmt.Errorf("failed to decode attachments: %w", err)
	}
	return attachments, nil
}

// FindUser resolves a display name to a user via the user search endpoint.
// Only an exact case-insensitive display-name match counts; the first such
// match wins and (nil, nil) means no match. Multiple same-name users are
// never disambiguated.
func (c *Client) FindUser(ctx context.Context, displayName string) (*models.User, error) {
	q := url.Values{}
	q.Set("query", displayName)

	body, err := c.do(ctx, http.MethodGet, c.apiURL("user/search")+"?"+q.Encode(), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user search result: %w", err)
	}
	for i := range users {
		if strings.EqualFold(users[i].DisplayName, displayName) {
			return &users[i], nil
		}
	}
	return nil, nil
}

// apiURL builds a v3 REST endpoint URL
func (c *Client) apiURL(path string) string {
	return fmt.Sprintf("%s/rest/api/3/%s", c.config.JiraBaseURL, path)
}

// agileURL builds an agile 1.0 endpoint URL
func (c *Client) agileURL(path string) string {
	return fmt.Sprintf("%s/rest/agile/1.0/%s", c.config.JiraBaseURL, path)
}

// do performs one HTTP round trip with basic auth and a JSON payload,
// returning the response body when the status matches wantStatus.
func (c *Client) do(ctx context.Context, method, rawURL string, payload interface{}, wantStatus int) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.addAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("request failed: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// addAuthHeader adds basic authentication with email and API token
func (c *Client) addAuthHeader(req *http.Request) {
	auth := base64.StdEncoding.EncodeToString([]byte(c.config.JiraEmail + ":" + c.config.JiraAPIToken))
	req.Header.Set("Authorization", "Basic "+auth)
}
