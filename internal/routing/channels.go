// Package routing maps ServiceNow assignment groups to Slack channels by
// case-insensitive prefix.
package routing

import (
	"fmt"
	"strings"
)

// Mapping binds an upper-case assignment-group prefix to a channel.
type Mapping struct {
	Prefix  string
	Channel string
}

// DefaultMappings is the static routing table for the TechNova support
// organization. First match wins, so DEVTOOLS must precede DEV.
var DefaultMappings = []Mapping{
	{Prefix: "CLOUD", Channel: "#cloud-support"},
	{Prefix: "DATA", Channel: "#data-support"},
	{Prefix: "SEC", Channel: "#security-incidents"},
	{Prefix: "COLLAB", Channel: "#collab-support"},
	{Prefix: "FIN", Channel: "#fintech-support"},
	{Prefix: "DEVTOOLS", Channel: "#devtools-support"},
	{Prefix: "DEV", Channel: "#devtools-support"},
	{Prefix: "ITSM", Channel: "#itsm-support"},
	{Prefix: "ERP", Channel: "#erp-support"},
	{Prefix: "IOT", Channel: "#iot-support"},
	{Prefix: "GENERAL", Channel: "#general-support"},
}

// Router resolves assignment groups to channels against an immutable table.
type Router struct {
	mappings []Mapping
}

// NewRouter validates and captures the table. Nested prefixes are rejected
// when they route to different channels; with equal channels first match in
// table order is authoritative.
func NewRouter(mappings []Mapping) (*Router, error) {
	for i, a := range mappings {
		if a.Prefix == "" || a.Channel == "" {
			return nil, fmt.Errorf("routing: empty prefix or channel at entry %d", i)
		}
		if a.Prefix != strings.ToUpper(a.Prefix) {
			return nil, fmt.Errorf("routing: prefix %q must be upper case", a.Prefix)
		}
		for _, b := range mappings[i+1:] {
			if a.Channel == b.Channel {
				continue
			}
			if strings.HasPrefix(a.Prefix, b.Prefix) || strings.HasPrefix(b.Prefix, a.Prefix) {
				return nil, fmt.Errorf("routing: prefixes %q and %q overlap with different channels", a.Prefix, b.Prefix)
			}
		}
	}
	table := make([]Mapping, len(mappings))
	copy(table, mappings)
	return &Router{mappings: table}, nil
}

// NewDefaultRouter builds a router over DefaultMappings.
func NewDefaultRouter() *Router {
	r, err := NewRouter(DefaultMappings)
	if err != nil {
		// DefaultMappings are fixed and covered by tests.
		panic(err)
	}
	return r
}

// Route returns the channel for the first prefix the upper-cased group
// starts with. ok is false for an empty group or when no prefix matches;
// callers fall back to the configured default channel.
func (r *Router) Route(assignmentGroup string) (channel string, ok bool) {
	if assignmentGroup == "" {
		return "", false
	}
	group := strings.ToUpper(assignmentGroup)
	for _, m := range r.mappings {
		if strings.HasPrefix(group, m.Prefix) {
			return m.Channel, true
		}
	}
	return "", false
}
