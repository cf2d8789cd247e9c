package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tasnees/IBM-hackathon/internal/domain"
	ghclient "github.com/tasnees/IBM-hackathon/internal/github"
	"github.com/tasnees/IBM-hackathon/internal/observability"
	"github.com/tasnees/IBM-hackathon/internal/routing"
	"github.com/tasnees/IBM-hackathon/internal/servicenow"
	slackclient "github.com/tasnees/IBM-hackathon/internal/slack"
)

type fakeIncidents struct {
	calls int
	input servicenow.IncidentInput
	err   error
}

func (f *fakeIncidents) CreateIncident(ctx context.Context, input servicenow.IncidentInput) (*servicenow.Incident, error) {
	f.calls++
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &servicenow.Incident{Number: "INC0010005", SysID: "abc123"}, nil
}

func (f *fakeIncidents) IncidentURL(number string) string {
	return "https://example.service-now.com/nav_to.do?uri=incident.do?sysparm_query=number=" + number
}

type fakeNotifier struct {
	calls int
	note  slackclient.Notification
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, note slackclient.Notification) (string, error) {
	f.calls++
	f.note = note
	channel := note.Channel
	if channel == "" {
		channel = "#incidents"
	}
	return channel, f.err
}

type fakeIssues struct {
	calls  int
	input  ghclient.IssueInput
	report ghclient.IssueReport
	err    error
}

func (f *fakeIssues) FileIssue(ctx context.Context, input ghclient.IssueInput) (ghclient.IssueReport, error) {
	f.calls++
	f.input = input
	return f.report, f.err
}

func newTestService(incidents *fakeIncidents, notifier *fakeNotifier, issues *fakeIssues) *SupportService {
	return NewSupportService(Dependencies{
		Incidents: incidents,
		Notifier:  notifier,
		Issues:    issues,
		Router:    routing.NewDefaultRouter(),
		Metrics:   observability.NewMetrics(),
		Logger:    zap.NewNop(),
	})
}

func cloudRequest() domain.SupportRequest {
	return domain.SupportRequest{
		ShortDescription: "VM scaling issue",
		UrgencyValue:     "2",
		AssignmentGroup:  "CLOUD-L1-Support",
		Description:      "plain text, no trace",
	}
}

func TestHandleSupportRequestHappyPath(t *testing.T) {
	incidents := &fakeIncidents{}
	notifier := &fakeNotifier{}
	issues := &fakeIssues{}
	svc := newTestService(incidents, notifier, issues)

	resp := svc.HandleSupportRequest(context.Background(), cloudRequest())

	assert.True(t, resp.Success)
	assert.Equal(t, "INC0010005", resp.IncidentNumber)
	assert.Equal(t, "abc123", resp.IncidentSysID)
	assert.True(t, resp.SlackMessageSent)
	assert.Equal(t, "#cloud-support", resp.SlackChannel, "assignment group routed by prefix")
	assert.False(t, resp.GitHubIssueCreated)
	assert.Nil(t, resp.ErrorDetails)

	assert.Equal(t, "CLOUD-L1-Support", incidents.input.AssignmentGroup)
	assert.Equal(t, "INC0010005", notifier.note.IncidentNumber)
	assert.Contains(t, notifier.note.IncidentURL, "INC0010005")
	assert.Equal(t, 1, issues.calls, "description present, issue step runs")
}

func TestTicketFailureShortCircuits(t *testing.T) {
	incidents := &fakeIncidents{err: domain.NewIntegrationError(
		domain.ServiceServiceNow, domain.CodeServiceNowAPIError, "rejected", nil)}
	notifier := &fakeNotifier{}
	issues := &fakeIssues{}
	svc := newTestService(incidents, notifier, issues)

	resp := svc.HandleSupportRequest(context.Background(), cloudRequest())

	assert.False(t, resp.Success)
	assert.Empty(t, resp.IncidentNumber)
	require.NotNil(t, resp.ErrorDetails)
	assert.Equal(t, domain.CodeServiceNowAPIError, resp.ErrorDetails.ErrorCode)
	assert.Equal(t, domain.ServiceServiceNow, resp.ErrorDetails.Service)

	assert.Equal(t, 0, notifier.calls, "no notification after ticket failure")
	assert.Equal(t, 0, issues.calls, "no issue step after ticket failure")
}

func TestNotificationFailureIsNonFatal(t *testing.T) {
	incidents := &fakeIncidents{}
	notifier := &fakeNotifier{err: domain.NewIntegrationError(
		domain.ServiceSlack, domain.CodeSlackAPIError, "not_in_channel", nil)}
	issues := &fakeIssues{}
	svc := newTestService(incidents, notifier, issues)

	resp := svc.HandleSupportRequest(context.Background(), cloudRequest())

	assert.True(t, resp.Success, "ticket exists, overall success stands")
	assert.False(t, resp.SlackMessageSent)
	assert.Equal(t, "#cloud-support", resp.SlackChannel)
	require.NotNil(t, resp.ErrorDetails)
	assert.Equal(t, domain.CodeSlackAPIError, resp.ErrorDetails.ErrorCode)
}

func TestIssueFailureIsNonFatal(t *testing.T) {
	incidents := &fakeIncidents{}
	notifier := &fakeNotifier{}
	issues := &fakeIssues{
		report: ghclient.IssueReport{StackTraceDetected: true},
		err: domain.NewIntegrationError(
			domain.ServiceGitHub, domain.CodeGitHubNoRepo, "no repository", nil),
	}
	svc := newTestService(incidents, notifier, issues)

	resp := svc.HandleSupportRequest(context.Background(), cloudRequest())

	assert.True(t, resp.Success)
	assert.True(t, resp.SlackMessageSent)
	assert.False(t, resp.GitHubIssueCreated)
	require.NotNil(t, resp.ErrorDetails)
	assert.Equal(t, domain.CodeGitHubNoRepo, resp.ErrorDetails.ErrorCode)
}

func TestNotificationErrorWinsOverIssueError(t *testing.T) {
	incidents := &fakeIncidents{}
	notifier := &fakeNotifier{err: domain.NewIntegrationError(
		domain.ServiceSlack, domain.CodeSlackAPIError, "not_in_channel", nil)}
	issues := &fakeIssues{
		report: ghclient.IssueReport{StackTraceDetected: true},
		err: domain.NewIntegrationError(
			domain.ServiceGitHub, domain.CodeGitHubAPIError, "validation failed", nil),
	}
	svc := newTestService(incidents, notifier, issues)

	resp := svc.HandleSupportRequest(context.Background(), cloudRequest())

	require.NotNil(t, resp.ErrorDetails)
	assert.Equal(t, domain.ServiceSlack, resp.ErrorDetails.Service)
}

func TestNoDescriptionSkipsIssueStep(t *testing.T) {
	incidents := &fakeIncidents{}
	notifier := &fakeNotifier{}
	issues := &fakeIssues{}
	svc := newTestService(incidents, notifier, issues)

	req := cloudRequest()
	req.Description = ""
	resp := svc.HandleSupportRequest(context.Background(), req)

	assert.True(t, resp.Success)
	assert.Equal(t, 0, issues.calls, "issue step is a no-op without a description")
	assert.False(t, resp.GitHubIssueCreated)
}

func TestIssueCreatedFieldsEchoed(t *testing.T) {
	incidents := &fakeIncidents{}
	notifier := &fakeNotifier{}
	issues := &fakeIssues{report: ghclient.IssueReport{
		StackTraceDetected: true,
		Created:            true,
		URL:                "https://github.com/technova/platform/issues/77",
		Number:             77,
	}}
	svc := newTestService(incidents, notifier, issues)

	req := cloudRequest()
	req.Description = "Traceback (most recent call last):\n  File \"app.py\", line 1"
	resp := svc.HandleSupportRequest(context.Background(), req)

	assert.True(t, resp.GitHubIssueCreated)
	assert.Equal(t, 77, resp.GitHubIssueNumber)
	assert.Equal(t, "https://github.com/technova/platform/issues/77", resp.GitHubIssueURL)
	assert.Equal(t, req.Description, issues.input.ErrorMessage)
	assert.Equal(t, "INC0010005", issues.input.IncidentNumber)
	assert.Nil(t, resp.ErrorDetails)
}

func TestIntegrationMetricsRecorded(t *testing.T) {
	metrics := observability.NewMetrics()
	notifier := &fakeNotifier{err: domain.NewIntegrationError(
		domain.ServiceSlack, domain.CodeSlackAPIError, "not_in_channel", nil)}
	svc := NewSupportService(Dependencies{
		Incidents: &fakeIncidents{},
		Notifier:  notifier,
		Issues:    &fakeIssues{},
		Router:    routing.NewDefaultRouter(),
		Metrics:   metrics,
		Logger:    zap.NewNop(),
	})

	svc.HandleSupportRequest(context.Background(), cloudRequest())

	assert.Equal(t, int64(1), metrics.IntegrationCount(domain.ServiceServiceNow, true))
	assert.Equal(t, int64(1), metrics.IntegrationCount(domain.ServiceSlack, false))
	assert.Equal(t, int64(0), metrics.IntegrationCount(domain.ServiceGitHub, true),
		"no detection, no github metric")
}

func TestUnroutedGroupFallsThroughToNotifierDefault(t *testing.T) {
	incidents := &fakeIncidents{}
	notifier := &fakeNotifier{}
	issues := &fakeIssues{}
	svc := newTestService(incidents, notifier, issues)

	req := cloudRequest()
	req.AssignmentGroup = "Unknown-Group"
	resp := svc.HandleSupportRequest(context.Background(), req)

	assert.Empty(t, notifier.note.Channel, "router passes no channel for unknown groups")
	assert.Equal(t, "#incidents", resp.SlackChannel)
}
