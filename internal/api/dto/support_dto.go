package dto

import "github.com/tasnees/IBM-hackathon/internal/domain"

// SupportRequest payload for POST /get_support.
type SupportRequest struct {
	ShortDescription string `json:"short_description"`
	UrgencyValue     string `json:"urgency_value"`
	Description      string `json:"description"`
	AssignmentGroup  string `json:"assignment_group"`
	CallerUsername   string `json:"caller_username"`
	ImpactValue      string `json:"impact_value"`
	IncidentCategory string `json:"incident_category"`
}

// ToDomain converts the payload to the domain request.
func (r SupportRequest) ToDomain() domain.SupportRequest {
	return domain.SupportRequest{
		ShortDescription: r.ShortDescription,
		UrgencyValue:     r.UrgencyValue,
		Description:      r.Description,
		AssignmentGroup:  r.AssignmentGroup,
		CallerUsername:   r.CallerUsername,
		ImpactValue:      r.ImpactValue,
		IncidentCategory: r.IncidentCategory,
	}
}

// SupportResponse is the aggregated pipeline outcome.
type SupportResponse struct {
	Success            bool                 `json:"success"`
	IncidentNumber     string               `json:"incident_number,omitempty"`
	IncidentSysID      string               `json:"incident_sys_id,omitempty"`
	SlackMessageSent   bool                 `json:"slack_message_sent"`
	SlackChannel       string               `json:"slack_channel,omitempty"`
	GitHubIssueCreated bool                 `json:"github_issue_created"`
	GitHubIssueURL     string               `json:"github_issue_url,omitempty"`
	GitHubIssueNumber  int                  `json:"github_issue_number,omitempty"`
	ErrorDetails       *domain.ErrorDetails `json:"error_details,omitempty"`
}

// FromDomain converts the domain response to its wire shape.
func FromDomain(resp domain.SupportResponse) SupportResponse {
	return SupportResponse{
		Success:            resp.Success,
		IncidentNumber:     resp.IncidentNumber,
		IncidentSysID:      resp.IncidentSysID,
		SlackMessageSent:   resp.SlackMessageSent,
		SlackChannel:       resp.SlackChannel,
		GitHubIssueCreated: resp.GitHubIssueCreated,
		GitHubIssueURL:     resp.GitHubIssueURL,
		GitHubIssueNumber:  resp.GitHubIssueNumber,
		ErrorDetails:       resp.ErrorDetails,
	}
}
