package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nvhoang/jira-assistant/internal/models"
)

// FindBoard resolves a project name to its agile board using the exact
// name filter. The first result wins and (nil, nil) means no board; callers
// must not assume the name is unique.
func (c *Client) FindBoard(ctx context.Context, projectName string) (*models.Board, error) {
	q := url.Values{}
	q.Set("name", projectName)

	body, err := c.do(ctx, http.MethodGet, c.agileURL("board")+"?"+q.Encode(), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var boards models.BoardList
	if err := json.Unmarshal(body, &boards); err != nil {
		return nil, fmt.Errorf("failed to decode board list: %w", err)
	}
	if len(boards.Values) == 0 {
		return nil, nil
	}
	return &boards.Values[0], nil
}

// GetSprints lists all sprints on a board, most recent first as returned
// by Jira.
func (c *Client) GetSprints(ctx context.Context, boardID int) ([]models.Sprint, error) {
	return c.sprints(ctx, boardID, "")
}

// GetSprintsByState lists the sprints on a board filtered by Jira sprint
// state ("active", "future" or "closed").
func (c *Client) GetSprintsByState(ctx context.Context, boardID int, state string) ([]models.Sprint, error) {
	return c.sprints(ctx, boardID, state)
}

func (c *Client) sprints(ctx context.Context, boardID int, state string) ([]models.Sprint, error) {
	endpoint := c.agileURL("board/" + strconv.Itoa(boardID) + "/sprint")
	if state != "" {
		q := url.Values{}
		q.Set("state", state)
		endpoint += "?" + q.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var sprints models.SprintList
	if err := json.Unmarshal(body, &sprints); err != nil {
		return nil, fmt.Errorf("failed to decode sprint list: %w", err)
	}
	return sprints.Values, nil
}

// GetSprintIssues lists the issues in one sprint of a board.
func (c *Client) GetSprintIssues(ctx context.Context, boardID, sprintID int) ([]models.Issue, error) {
	endpoint := c.agileURL(fmt.Sprintf("board/%d/sprint/%d/issue", boardID, sprintID))

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var result models.SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode sprint issues: %w", err)
	}
	return result.Issues, nil
}
