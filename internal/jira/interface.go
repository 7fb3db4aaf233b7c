package jira

import (
	"context"

	"github.com/nvhoang/jira-assistant/internal/models"
)

// API defines the Jira operations the assistant depends on. Each method
// maps one domain action to one HTTP call. Tests substitute a fake.
type API interface {
	CreateIssue(ctx context.Context, projectKey, summary string, description *models.ADFDocument) (*models.CreatedIssue, error)
	GetIssue(ctx context.Context, issueKey string) (map[string]interface{}, error)
	UpdateIssue(ctx context.Context, issueKey string, fields map[string]interface{}) error
	AddComment(ctx context.Context, issueKey, comment string) (*models.Comment, error)
	SearchIssues(ctx context.Context, jql string, maxResults int) ([]models.Issue, error)
	AssignIssue(ctx context.Context, issueKey, accountID string) error
	GetTransitions(ctx context.Context, issueKey string) ([]models.Transition, error)
	TransitionIssue(ctx context.Context, issueKey, transitionID string) error
	AddAttachment(ctx context.Context, issueKey, filePath string) ([]models.Attachment, error)
	FindUser(ctx context.Context, displayName string) (*models.User, error)
	FindBoard(ctx context.Context, projectName string) (*models.Board, error)
	GetSprints(ctx context.Context, boardID int) ([]models.Sprint, error)
	GetSprintsByState(ctx context.Context, boardID int, state string) ([]models.Sprint, error)
	GetSprintIssues(ctx context.Context, boardID, sprintID int) ([]models.Issue, error)
}

var _ API = (*Client)(nil)
