package jira

import (
	"context"
	"fmt"

	v3 "github.com/ctreminiom/go-atlassian/v2/jira/v3"

	"github.com/nvhoang/jira-assistant/internal/config"
)

// VerifyCredentials checks the configured Jira credentials against the
// "myself" endpoint and returns the authenticated display name. Used at
// startup as a best-effort sanity check; a failure here means every later
// REST operation would fail too.
func VerifyCredentials(ctx context.Context, cfg *config.Config) (string, error) {
	client, err := v3.New(nil, cfg.JiraBaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to create Atlassian client: %w", err)
	}
	client.Auth.SetBasicAuth(cfg.JiraEmail, cfg.JiraAPIToken)

	me, _, err := client.MySelf.Details(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("credential check failed: %w", err)
	}
	return me.DisplayName, nil
}
