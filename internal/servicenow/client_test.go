package servicenow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tasnees/IBM-hackathon/internal/config"
	"github.com/tasnees/IBM-hackathon/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(config.ServiceNowConfig{
		Instance: "example.service-now.com",
		Username: "svc",
		Password: "secret",
	}, zap.NewNop())
	c.SetBaseURL(srv.URL)
	return c, srv
}

func TestCreateIncident(t *testing.T) {
	var gotPayload map[string]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/now/table/incident", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "svc", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]string{"number": "INC0010005", "sys_id": "abc123"},
		})
	}))

	incident, err := c.CreateIncident(context.Background(), IncidentInput{
		ShortDescription: "VM scaling issue",
		Urgency:          "2",
		AssignmentGroup:  "CLOUD-L1-Support",
		CallerID:         "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "INC0010005", incident.Number)
	assert.Equal(t, "abc123", incident.SysID)

	assert.Equal(t, "VM scaling issue", gotPayload["short_description"])
	assert.Equal(t, "2", gotPayload["urgency"])
	assert.Equal(t, "CLOUD-L1-Support", gotPayload["assignment_group"])
	assert.Equal(t, "admin", gotPayload["caller_id"])
	_, hasDescription := gotPayload["description"]
	assert.False(t, hasDescription, "empty optional fields must be omitted")
}

func TestCreateIncidentAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"insufficient rights"}}`))
	}))

	_, err := c.CreateIncident(context.Background(), IncidentInput{ShortDescription: "x", Urgency: "3"})
	require.Error(t, err)

	var integ *domain.IntegrationError
	require.True(t, errors.As(err, &integ))
	assert.Equal(t, domain.CodeServiceNowAPIError, integ.Code)
	assert.Equal(t, domain.ServiceServiceNow, integ.Service)
}

func TestCreateIncidentTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(config.ServiceNowConfig{Instance: "x", Username: "u", Password: "p"}, zap.NewNop())
	c.SetBaseURL(srv.URL)
	srv.Close()

	_, err := c.CreateIncident(context.Background(), IncidentInput{ShortDescription: "x", Urgency: "3"})
	require.Error(t, err)

	var integ *domain.IntegrationError
	require.True(t, errors.As(err, &integ))
	assert.Equal(t, domain.CodeServiceNowUnexpectedError, integ.Code)
}

func TestCreateIncidentMissingCredentials(t *testing.T) {
	c := NewClient(config.ServiceNowConfig{Instance: "example.service-now.com"}, zap.NewNop())

	_, err := c.CreateIncident(context.Background(), IncidentInput{ShortDescription: "x", Urgency: "3"})
	require.Error(t, err)

	var integ *domain.IntegrationError
	require.True(t, errors.As(err, &integ))
	assert.Equal(t, domain.CodeServiceNowUnexpectedError, integ.Code)
	assert.Contains(t, integ.Message, "not configured")
}

func TestListAssignmentGroups(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/now/table/sys_user_group", r.URL.Path)
		assert.Equal(t, "name,sys_id", r.URL.Query().Get("sysparm_fields"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]string{
				{"name": "CLOUD-L1-Support", "sys_id": "g1"},
				{"name": "SEC-SOC-Team", "sys_id": "g2"},
			},
		})
	}))

	groups, err := c.ListAssignmentGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "CLOUD-L1-Support", groups[0].Name)
	assert.Equal(t, "g2", groups[1].SysID)
}

func TestIncidentURL(t *testing.T) {
	c := NewClient(config.ServiceNowConfig{Instance: "example.service-now.com"}, zap.NewNop())

	assert.Equal(t,
		"https://example.service-now.com/nav_to.do?uri=incident.do?sysparm_query=number=INC0010005",
		c.IncidentURL("INC0010005"))
}

func TestCatalogs(t *testing.T) {
	assert.Len(t, Categories(), 8)
	assert.Equal(t, CatalogEntry{Value: "1", Label: "1 - Critical"}, Urgencies()[0])
	assert.Equal(t, CatalogEntry{Value: "4", Label: "4 - Single User"}, Impacts()[3])
}
