// Package servicenow wraps the ServiceNow Table API for incident creation
// and reference-data lookups.
package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/tasnees/IBM-hackathon/internal/config"
	"github.com/tasnees/IBM-hackathon/internal/domain"
)

// Client talks to one ServiceNow instance.
type Client struct {
	cfg        config.ServiceNowConfig
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs a ServiceNow client. Credentials are not checked
// here; an unconfigured client reports a structured error per call.
func NewClient(cfg config.ServiceNowConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: "https://" + cfg.Instance,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// IncidentInput is the field mapping for incident creation. Optional fields
// are omitted from the payload when empty.
type IncidentInput struct {
	ShortDescription string `json:"short_description"`
	Urgency          string `json:"urgency"`
	Description      string `json:"description,omitempty"`
	AssignmentGroup  string `json:"assignment_group,omitempty"`
	CallerID         string `json:"caller_id,omitempty"`
	Impact           string `json:"impact,omitempty"`
	Category         string `json:"category,omitempty"`
}

// Incident is the subset of an incident record this service consumes.
type Incident struct {
	Number string `json:"number"`
	SysID  string `json:"sys_id"`
}

// AssignmentGroup is one sys_user_group row.
type AssignmentGroup struct {
	Name  string `json:"name"`
	SysID string `json:"sys_id"`
}

type incidentEnvelope struct {
	Result Incident `json:"result"`
}

type groupListEnvelope struct {
	Result []AssignmentGroup `json:"result"`
}

// CreateIncident creates one incident record. A single attempt, no retries.
func (c *Client) CreateIncident(ctx context.Context, input IncidentInput) (*Incident, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowUnexpectedError,
			fmt.Sprintf("failed to marshal incident payload: %v", err), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/now/table/incident", bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowUnexpectedError,
			fmt.Sprintf("failed to create request: %v", err), err)
	}
	c.prepareRequest(req)

	c.logger.Info("creating servicenow incident",
		zap.String("short_description", input.ShortDescription),
		zap.String("assignment_group", input.AssignmentGroup))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowUnexpectedError,
			fmt.Sprintf("request failed: %v", err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowAPIError,
			fmt.Sprintf("incident create returned status %d: %s", resp.StatusCode, string(respBody)), nil)
	}

	var envelope incidentEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowUnexpectedError,
			fmt.Sprintf("failed to decode incident response: %v", err), err)
	}

	c.logger.Info("created servicenow incident", zap.String("number", envelope.Result.Number))
	return &envelope.Result, nil
}

// ListAssignmentGroups fetches the sys_user_group table.
func (c *Client) ListAssignmentGroups(ctx context.Context) ([]AssignmentGroup, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/api/now/table/sys_user_group?" + url.Values{
		"sysparm_fields": {"name,sys_id"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowUnexpectedError,
			fmt.Sprintf("failed to create request: %v", err), err)
	}
	c.prepareRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowUnexpectedError,
			fmt.Sprintf("request failed: %v", err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowAPIError,
			fmt.Sprintf("group lookup returned status %d: %s", resp.StatusCode, string(respBody)), nil)
	}

	var envelope groupListEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowUnexpectedError,
			fmt.Sprintf("failed to decode group response: %v", err), err)
	}
	return envelope.Result, nil
}

// IncidentURL returns the record deep link used in notifications.
func (c *Client) IncidentURL(number string) string {
	return fmt.Sprintf("%s/nav_to.do?uri=incident.do?sysparm_query=number=%s", c.baseURL, number)
}

func (c *Client) prepareRequest(req *http.Request) {
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func (c *Client) checkCredentials() error {
	if c.cfg.Username == "" || c.cfg.Password == "" {
		return domain.NewIntegrationError(domain.ServiceServiceNow, domain.CodeServiceNowUnexpectedError,
			"servicenow credentials not configured", nil)
	}
	return nil
}

// SetBaseURL overrides the instance URL. Used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}
