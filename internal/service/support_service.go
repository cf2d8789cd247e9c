package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tasnees/IBM-hackathon/internal/domain"
	ghclient "github.com/tasnees/IBM-hackathon/internal/github"
	"github.com/tasnees/IBM-hackathon/internal/observability"
	"github.com/tasnees/IBM-hackathon/internal/routing"
	"github.com/tasnees/IBM-hackathon/internal/servicenow"
	slackclient "github.com/tasnees/IBM-hackathon/internal/slack"
)

// IncidentCreator creates ServiceNow incidents.
type IncidentCreator interface {
	CreateIncident(ctx context.Context, input servicenow.IncidentInput) (*servicenow.Incident, error)
	IncidentURL(number string) string
}

// Notifier posts incident notifications to Slack.
type Notifier interface {
	Notify(ctx context.Context, note slackclient.Notification) (channel string, err error)
}

// IssueFiler files GitHub issues behind the stack-trace gate.
type IssueFiler interface {
	FileIssue(ctx context.Context, input ghclient.IssueInput) (ghclient.IssueReport, error)
}

// SupportService sequences the incident pipeline: ticket, notification,
// conditional issue. Incident creation is the gating step; later failures
// are swallowed into error_details.
type SupportService struct {
	incidents IncidentCreator
	notifier  Notifier
	issues    IssueFiler
	router    *routing.Router
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// Dependencies bundles collaborators for the support service.
type Dependencies struct {
	Incidents IncidentCreator
	Notifier  Notifier
	Issues    IssueFiler
	Router    *routing.Router
	Metrics   *observability.Metrics
	Logger    *zap.Logger
}

// NewSupportService creates the service.
func NewSupportService(deps Dependencies) *SupportService {
	return &SupportService{
		incidents: deps.Incidents,
		notifier:  deps.Notifier,
		issues:    deps.Issues,
		router:    deps.Router,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// HandleSupportRequest runs the pipeline for one request.
func (s *SupportService) HandleSupportRequest(ctx context.Context, req domain.SupportRequest) domain.SupportResponse {
	s.logger.Info("received support request", zap.String("short_description", req.ShortDescription))

	incident, err := s.incidents.CreateIncident(ctx, servicenow.IncidentInput{
		ShortDescription: req.ShortDescription,
		Urgency:          req.UrgencyValue,
		Description:      req.Description,
		AssignmentGroup:  req.AssignmentGroup,
		CallerID:         req.CallerUsername,
		Impact:           req.ImpactValue,
		Category:         req.IncidentCategory,
	})
	s.metrics.RecordIntegration(domain.ServiceServiceNow, err == nil)
	if err != nil {
		s.logger.Error("failed to create servicenow incident", zap.Error(err))
		return domain.SupportResponse{
			Success:      false,
			ErrorDetails: domain.ErrorDetailsFrom(domain.ServiceServiceNow, err),
		}
	}

	channel, _ := s.router.Route(req.AssignmentGroup)

	sentChannel, notifyErr := s.notifier.Notify(ctx, slackclient.Notification{
		Channel:          channel,
		IncidentNumber:   incident.Number,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		AssignmentGroup:  req.AssignmentGroup,
		Urgency:          req.UrgencyValue,
		Impact:           req.ImpactValue,
		Caller:           req.CallerUsername,
		IncidentURL:      s.incidents.IncidentURL(incident.Number),
	})
	s.metrics.RecordIntegration(domain.ServiceSlack, notifyErr == nil)
	if notifyErr != nil {
		s.logger.Warn("failed to send slack notification", zap.Error(notifyErr))
	}

	var (
		report   ghclient.IssueReport
		issueErr error
	)
	if req.Description != "" {
		report, issueErr = s.issues.FileIssue(ctx, ghclient.IssueInput{
			ErrorMessage:     req.Description,
			IncidentNumber:   incident.Number,
			ShortDescription: req.ShortDescription,
			CallerUsername:   req.CallerUsername,
		})
		if report.StackTraceDetected {
			s.metrics.RecordIntegration(domain.ServiceGitHub, issueErr == nil)
		}
		if issueErr != nil {
			s.logger.Warn("failed to create github issue", zap.Error(issueErr))
		} else if report.Created {
			s.logger.Info("github issue created", zap.String("url", report.URL))
		}
	}

	response := domain.SupportResponse{
		Success:            true,
		IncidentNumber:     incident.Number,
		IncidentSysID:      incident.SysID,
		SlackMessageSent:   notifyErr == nil,
		SlackChannel:       sentChannel,
		GitHubIssueCreated: report.Created,
		GitHubIssueURL:     report.URL,
		GitHubIssueNumber:  report.Number,
	}
	if notifyErr != nil {
		response.ErrorDetails = domain.ErrorDetailsFrom(domain.ServiceSlack, notifyErr)
	} else if issueErr != nil {
		response.ErrorDetails = domain.ErrorDetailsFrom(domain.ServiceGitHub, issueErr)
	}
	return response
}
