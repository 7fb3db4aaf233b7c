package assistant

import (
	"context"
	"fmt"

	"github.com/nvhoang/jira-assistant/internal/models"
)

// scriptedLLM replays a fixed sequence of completions and records the
// prompts it was asked.
type scriptedLLM struct {
	replies []string
	prompts []string
	err     error
}

func (s *scriptedLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", fmt.Errorf("scripted LLM ran out of replies (prompt %d)", len(s.prompts))
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

// fakeJira implements jira.API with per-method hooks and a call counter.
// Unhooked methods fail loudly so a test cannot silently reach an
// operation it did not expect.
type fakeJira struct {
	calls map[string]int

	createIssueFn       func(ctx context.Context, projectKey, summary string, description *models.ADFDocument) (*models.CreatedIssue, error)
	getIssueFn          func(ctx context.Context, issueKey string) (map[string]interface{}, error)
	updateIssueFn       func(ctx context.Context, issueKey string, fields map[string]interface{}) error
	addCommentFn        func(ctx context.Context, issueKey, comment string) (*models.Comment, error)
	searchIssuesFn      func(ctx context.Context, jql string, maxResults int) ([]models.Issue, error)
	assignIssueFn       func(ctx context.Context, issueKey, accountID string) error
	getTransitionsFn    func(ctx context.Context, issueKey string) ([]models.Transition, error)
	transitionIssueFn   func(ctx context.Context, issueKey, transitionID string) error
	addAttachmentFn     func(ctx context.Context, issueKey, filePath string) ([]models.Attachment, error)
	findUserFn          func(ctx context.Context, displayName string) (*models.User, error)
	findBoardFn         func(ctx context.Context, projectName string) (*models.Board, error)
	getSprintsFn        func(ctx context.Context, boardID int) ([]models.Sprint, error)
	getSprintsByStateFn func(ctx context.Context, boardID int, state string) ([]models.Sprint, error)
	getSprintIssuesFn   func(ctx context.Context, boardID, sprintID int) ([]models.Issue, error)
}

func (f *fakeJira) record(name string) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeJira) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeJira) CreateIssue(ctx context.Context, projectKey, summary string, description *models.ADFDocument) (*models.CreatedIssue, error) {
	f.record("CreateIssue")
	if f.createIssueFn == nil {
		return nil, fmt.Errorf("unexpected CreateIssue call")
	}
	return f.createIssueFn(ctx, projectKey, summary, description)
}

func (f *fakeJira) GetIssue(ctx context.Context, issueKey string) (map[string]interface{}, error) {
	f.record("GetIssue")
	if f.getIssueFn == nil {
		return nil, fmt.Errorf("unexpected GetIssue call")
	}
	return f.getIssueFn(ctx, issueKey)
}

func (f *fakeJira) UpdateIssue(ctx context.Context, issueKey string, fields map[string]interface{}) error {
	f.record("UpdateIssue")
	if f.updateIssueFn == nil {
		return fmt.Errorf("unexpected UpdateIssue call")
	}
	return f.updateIssueFn(ctx, issueKey, fields)
}

func (f *fakeJira) AddComment(ctx context.Context, issueKey, comment string) (*models.Comment, error) {
	f.record("AddComment")
	if f.addCommentFn == nil {
		return nil, fmt.Errorf("unexpected AddComment call")
	}
	return f.addCommentFn(ctx, issueKey, comment)
}

func (f *fakeJira) SearchIssues(ctx context.Context, jql string, maxResults int) ([]models.Issue, error) {
	f.record("SearchIssues")
	if f.searchIssuesFn == nil {
		return nil, fmt.Errorf("unexpected SearchIssues call")
	}
	return f.searchIssuesFn(ctx, jql, maxResults)
}

func (f *fakeJira) AssignIssue(ctx context.Context, issueKey, accountID string) error {
	f.record("AssignIssue")
	if f.assignIssueFn == nil {
		return fmt.Errorf("unexpected AssignIssue call")
	}
	return f.assignIssueFn(ctx, issueKey, accountID)
}

func (f *fakeJira) GetTransitions(ctx context.Context, issueKey string) ([]models.Transition, error) {
	f.record("GetTransitions")
	if f.getTransitionsFn == nil {
		return nil, fmt.Errorf("unexpected GetTransitions call")
	}
	return f.getTransitionsFn(ctx, issueKey)
}

func (f *fakeJira) TransitionIssue(ctx context.Context, issueKey, transitionID string) error {
	f.record("TransitionIssue")
	if f.transitionIssueFn == nil {
		return fmt.Errorf("unexpected TransitionIssue call")
	}
	return f.transitionIssueFn(ctx, issueKey, transitionID)
}

func (f *fakeJira) AddAttachment(ctx context.Context, issueKey, filePath string) ([]models.Attachment, error) {
	f.record("AddAttachment")
	if f.addAttachmentFn == nil {
		return nil, fmt.Errorf("unexpected AddAttachment call")
	}
	return f.addAttachmentFn(ctx, issueKey, filePath)
}

func (f *fakeJira) FindUser(ctx context.Context, displayName string) (*models.User, error) {
	f.record("FindUser")
	if f.findUserFn == nil {
		return nil, fmt.Errorf("unexpected FindUser call")
	}
	return f.findUserFn(ctx, displayName)
}

func (f *fakeJira) FindBoard(ctx context.Context, projectName string) (*models.Board, error) {
	f.record("FindBoard")
	if f.findBoardFn == nil {
		return nil, fmt.Errorf("unexpected FindBoard call")
	}
	return f.findBoardFn(ctx, projectName)
}

func (f *fakeJira) GetSprints(ctx context.Context, boardID int) ([]models.Sprint, error) {
	f.record("GetSprints")
	if f.getSprintsFn == nil {
		return nil, fmt.Errorf("unexpected GetSprints call")
	}
	return f.getSprintsFn(ctx, boardID)
}

func (f *fakeJira) GetSprintsByState(ctx context.Context, boardID int, state string) ([]models.Sprint, error) {
	f.record("GetSprintsByState")
	if f.getSprintsByStateFn == nil {
		return nil, fmt.Errorf("unexpected GetSprintsByState call")
	}
	return f.getSprintsByStateFn(ctx, boardID, state)
}

func (f *fakeJira) GetSprintIssues(ctx context.Context, boardID, sprintID int) ([]models.Issue, error) {
	f.record("GetSprintIssues")
	if f.getSprintIssuesFn == nil {
		return nil, fmt.Errorf("unexpected GetSprintIssues call")
	}
	return f.getSprintIssuesFn(ctx, boardID, sprintID)
}
