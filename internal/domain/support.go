package domain

// SupportRequest carries the fields of an inbound support-incident request.
// Instances are treated as immutable once decoded.
type SupportRequest struct {
	ShortDescription string
	UrgencyValue     string
	Description      string
	AssignmentGroup  string
	CallerUsername   string
	ImpactValue      string
	IncidentCategory string
}

// IncidentResult reports the outcome of a ServiceNow incident creation.
type IncidentResult struct {
	Success        bool
	IncidentNumber string
	IncidentSysID  string
	Error          *ErrorDetails
}

// NotificationResult reports the outcome of a Slack notification, including
// the channel the message was attempted against regardless of success.
type NotificationResult struct {
	Success bool
	Channel string
	Error   *ErrorDetails
}

// IssueResult reports the outcome of the GitHub issue step. StackTraceDetected
// stays true even when issue creation subsequently fails.
type IssueResult struct {
	Success            bool
	StackTraceDetected bool
	IssueCreated       bool
	IssueURL           string
	IssueNumber        int
	Error              *ErrorDetails
}

// SupportResponse aggregates the pipeline outcome for one request.
type SupportResponse struct {
	Success            bool
	IncidentNumber     string
	IncidentSysID      string
	SlackMessageSent   bool
	SlackChannel       string
	GitHubIssueCreated bool
	GitHubIssueURL     string
	GitHubIssueNumber  int
	ErrorDetails       *ErrorDetails
}
