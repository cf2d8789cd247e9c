package domain

import (
	"errors"
	"fmt"
)

// Service tags attached to integration errors.
const (
	ServiceServiceNow = "servicenow"
	ServiceSlack      = "slack"
	ServiceGitHub     = "github"
)

// Error codes surfaced in SupportResponse.ErrorDetails.
const (
	CodeServiceNowAPIError        = "SERVICENOW_API_ERROR"
	CodeServiceNowUnexpectedError = "SERVICENOW_UNEXPECTED_ERROR"
	CodeSlackAPIError             = "SLACK_API_ERROR"
	CodeSlackUnexpectedError      = "SLACK_UNEXPECTED_ERROR"
	CodeGitHubNoRepo              = "GITHUB_NO_REPO"
	CodeGitHubAPIError            = "GITHUB_API_ERROR"
	CodeGitHubUnexpectedError     = "GITHUB_UNEXPECTED_ERROR"
)

// ErrorDetails is the wire shape for a single integration failure.
type ErrorDetails struct {
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Service      string `json:"service,omitempty"`
}

// IntegrationError is returned by outbound clients. It carries the error
// taxonomy (code + originating service) so the orchestrator never needs to
// inspect transport-level errors.
type IntegrationError struct {
	Code    string
	Service string
	Message string
	Err     error
}

func (e *IntegrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// Details converts the error to its response representation.
func (e *IntegrationError) Details() *ErrorDetails {
	return &ErrorDetails{
		ErrorCode:    e.Code,
		ErrorMessage: e.Message,
		Service:      e.Service,
	}
}

// NewIntegrationError constructs a tagged integration error.
func NewIntegrationError(service, code, message string, err error) *IntegrationError {
	return &IntegrationError{Code: code, Service: service, Message: message, Err: err}
}

// ErrorDetailsFrom maps any error to ErrorDetails, defaulting to an
// unexpected-error shape for errors that are not IntegrationErrors.
func ErrorDetailsFrom(service string, err error) *ErrorDetails {
	if err == nil {
		return nil
	}
	var integ *IntegrationError
	if errors.As(err, &integ) {
		return integ.Details()
	}
	return &ErrorDetails{
		ErrorCode:    unexpectedCode(service),
		ErrorMessage: err.Error(),
		Service:      service,
	}
}

func unexpectedCode(service string) string {
	switch service {
	case ServiceServiceNow:
		return CodeServiceNowUnexpectedError
	case ServiceSlack:
		return CodeSlackUnexpectedError
	case ServiceGitHub:
		return CodeGitHubUnexpectedError
	default:
		return "UNEXPECTED_ERROR"
	}
}
