// Package github files issues for support incidents whose description
// contains a stack trace.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v60/github"
	"go.uber.org/zap"

	"github.com/tasnees/IBM-hackathon/internal/config"
	"github.com/tasnees/IBM-hackathon/internal/domain"
	"github.com/tasnees/IBM-hackathon/internal/stacktrace"
)

const fallbackTitle = "Error with stack trace detected"

// IssueInput carries the incident context for one issue.
type IssueInput struct {
	ErrorMessage     string
	IncidentNumber   string
	ShortDescription string
	ProductID        string
	CallerUsername   string
	Repo             string // owner/name; falls back to the configured default
}

// IssueReport is the outcome of the issue step. StackTraceDetected is set
// whenever the gate fires, even if creation later fails.
type IssueReport struct {
	StackTraceDetected bool
	Created            bool
	URL                string
	Number             int
}

// IssueFiler wraps the GitHub API behind the stack-trace gate.
type IssueFiler struct {
	cfg      config.GitHubConfig
	client   *gh.Client
	detector *stacktrace.Detector
	logger   *zap.Logger
}

// NewIssueFiler constructs an IssueFiler.
func NewIssueFiler(cfg config.GitHubConfig, detector *stacktrace.Detector, logger *zap.Logger) *IssueFiler {
	client := gh.NewClient(nil)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}
	return &IssueFiler{cfg: cfg, client: client, detector: detector, logger: logger}
}

// FileIssue creates an issue when ErrorMessage contains a stack trace. A
// plain-text message is a no-op success, not an error.
func (f *IssueFiler) FileIssue(ctx context.Context, input IssueInput) (IssueReport, error) {
	report := IssueReport{}

	if !f.detector.Detect(input.ErrorMessage) {
		f.logger.Info("no stack trace detected, skipping github issue")
		return report, nil
	}
	report.StackTraceDetected = true

	targetRepo := input.Repo
	if targetRepo == "" {
		targetRepo = f.cfg.DefaultRepo
	}
	if targetRepo == "" {
		return report, domain.NewIntegrationError(domain.ServiceGitHub, domain.CodeGitHubNoRepo,
			"No repository specified and no default configured", nil)
	}

	owner, repo, err := splitRepo(targetRepo)
	if err != nil {
		return report, domain.NewIntegrationError(domain.ServiceGitHub, domain.CodeGitHubUnexpectedError,
			err.Error(), err)
	}

	if f.cfg.Token == "" {
		return report, domain.NewIntegrationError(domain.ServiceGitHub, domain.CodeGitHubUnexpectedError,
			"github token not configured", nil)
	}

	if _, _, err := f.client.Repositories.Get(ctx, owner, repo); err != nil {
		return report, classify(err)
	}

	labels := f.existingLabels(ctx, owner, repo, candidateLabels(input.ProductID))

	request := &gh.IssueRequest{
		Title: gh.String(buildTitle(input)),
		Body:  gh.String(buildBody(input)),
	}
	if len(labels) > 0 {
		request.Labels = &labels
	}

	issue, _, err := f.client.Issues.Create(ctx, owner, repo, request)
	if err != nil {
		return report, classify(err)
	}

	report.Created = true
	report.URL = issue.GetHTMLURL()
	report.Number = issue.GetNumber()
	f.logger.Info("created github issue",
		zap.Int("number", report.Number), zap.String("url", report.URL))
	return report, nil
}

// existingLabels filters candidates down to labels present in the repo,
// skipping (and logging) ones that do not exist. Best effort by contract.
func (f *IssueFiler) existingLabels(ctx context.Context, owner, repo string, candidates []string) []string {
	var existing []string
	for _, label := range candidates {
		if _, _, err := f.client.Issues.GetLabel(ctx, owner, repo, label); err != nil {
			f.logger.Warn("label does not exist in repo, skipping", zap.String("label", label))
			continue
		}
		existing = append(existing, label)
	}
	return existing
}

func candidateLabels(productID string) []string {
	labels := []string{"bug", "auto-generated"}
	if productID != "" {
		labels = append(labels, "product:"+productID)
	}
	return labels
}

func buildTitle(input IssueInput) string {
	var parts []string
	if input.IncidentNumber != "" {
		parts = append(parts, "["+input.IncidentNumber+"]")
	}
	if input.ProductID != "" {
		parts = append(parts, "["+input.ProductID+"]")
	}
	if input.ShortDescription != "" {
		parts = append(parts, input.ShortDescription)
	} else {
		parts = append(parts, fallbackTitle)
	}
	return strings.Join(parts, " ")
}

func buildBody(input IssueInput) string {
	var b strings.Builder
	b.WriteString("## Auto-Generated Issue from Support Incident\n\n")
	b.WriteString("This issue was automatically created because a stack trace was detected in a support incident.\n\n")

	b.WriteString("### Incident Details\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	if input.IncidentNumber != "" {
		fmt.Fprintf(&b, "| ServiceNow Incident | %s |\n", input.IncidentNumber)
	}
	if input.ProductID != "" {
		fmt.Fprintf(&b, "| Product ID | %s |\n", input.ProductID)
	}
	if input.CallerUsername != "" {
		fmt.Fprintf(&b, "| Reported By | %s |\n", input.CallerUsername)
	}
	if input.ShortDescription != "" {
		fmt.Fprintf(&b, "| Summary | %s |\n", input.ShortDescription)
	}
	b.WriteString("\n")

	b.WriteString("### Error Message / Stack Trace\n\n")
	b.WriteString("```\n")
	b.WriteString(input.ErrorMessage)
	b.WriteString("\n```\n\n")

	b.WriteString("### Action Items\n\n")
	b.WriteString("- [ ] Investigate root cause\n")
	b.WriteString("- [ ] Implement fix\n")
	b.WriteString("- [ ] Add test coverage\n")
	b.WriteString("- [ ] Update incident with resolution\n\n")

	b.WriteString("---\n")
	b.WriteString("*This issue was auto-generated by the TechNova Support API*")
	return b.String()
}

func splitRepo(full string) (owner, repo string, err error) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, want owner/name", full)
	}
	return parts[0], parts[1], nil
}

func classify(err error) *domain.IntegrationError {
	var apiErr *gh.ErrorResponse
	if errors.As(err, &apiErr) {
		return domain.NewIntegrationError(domain.ServiceGitHub, domain.CodeGitHubAPIError, apiErr.Error(), err)
	}
	return domain.NewIntegrationError(domain.ServiceGitHub, domain.CodeGitHubUnexpectedError, err.Error(), err)
}

// SetBaseURL points the client at a test server.
func (f *IssueFiler) SetBaseURL(base string) error {
	parsed, err := url.Parse(base + "/")
	if err != nil {
		return err
	}
	f.client.BaseURL = parsed
	return nil
}
