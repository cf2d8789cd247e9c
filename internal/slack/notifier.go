// Package slack posts incident notifications and manages the support
// channels through the Slack Web API.
package slack

import (
	"context"
	"errors"
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/tasnees/IBM-hackathon/internal/config"
	"github.com/tasnees/IBM-hackathon/internal/domain"
)

const (
	descriptionLimit   = 500
	errChannelNotFound = "channel_not_found"
)

// Notification describes one incident message.
type Notification struct {
	Channel          string // optional; falls back to the configured default
	IncidentNumber   string
	ShortDescription string
	Description      string
	AssignmentGroup  string
	Urgency          string
	Impact           string
	Caller           string
	IncidentURL      string // ServiceNow record deep link; empty disables the button
}

// Notifier wraps the Slack Web API client.
type Notifier struct {
	cfg    config.SlackConfig
	api    *slackapi.Client
	logger *zap.Logger
}

// NewNotifier constructs a Notifier. Extra options are passed through to the
// underlying client (tests use OptionAPIURL).
func NewNotifier(cfg config.SlackConfig, logger *zap.Logger, opts ...slackapi.Option) *Notifier {
	return &Notifier{
		cfg:    cfg,
		api:    slackapi.New(cfg.BotToken, opts...),
		logger: logger,
	}
}

// Notify posts the incident message to the resolved channel. When the post
// fails with channel_not_found the channel is created (public) and the post
// retried exactly once. The attempted channel is returned in all cases.
func (n *Notifier) Notify(ctx context.Context, note Notification) (string, error) {
	channel := note.Channel
	if channel == "" {
		channel = n.cfg.DefaultChannel
	}
	if channel != "" && !strings.HasPrefix(channel, "#") {
		channel = "#" + channel
	}

	if n.cfg.BotToken == "" {
		return channel, domain.NewIntegrationError(domain.ServiceSlack, domain.CodeSlackUnexpectedError,
			"slack bot token not configured", nil)
	}

	fallback := fmt.Sprintf("New Incident: %s - %s", note.IncidentNumber, note.ShortDescription)
	options := []slackapi.MsgOption{
		slackapi.MsgOptionText(fallback, false),
		slackapi.MsgOptionBlocks(buildBlocks(note)...),
	}

	_, _, err := n.api.PostMessageContext(ctx, channel, options...)
	if err == nil {
		n.logger.Info("sent slack notification", zap.String("channel", channel))
		return channel, nil
	}

	if err.Error() != errChannelNotFound {
		return channel, classify(err)
	}

	n.logger.Info("slack channel not found, creating it", zap.String("channel", channel))
	if _, createErr := n.CreateChannel(ctx, channel); createErr != nil {
		// Surface the original post failure, as the create path is best effort.
		return channel, classify(err)
	}

	if _, _, retryErr := n.api.PostMessageContext(ctx, channel, options...); retryErr != nil {
		return channel, classify(retryErr)
	}
	n.logger.Info("sent slack notification to newly created channel", zap.String("channel", channel))
	return channel, nil
}

// CreateChannel creates a public channel, stripping any # prefix from the
// name. Returns the channel ID.
func (n *Notifier) CreateChannel(ctx context.Context, name string) (string, error) {
	if n.cfg.BotToken == "" {
		return "", domain.NewIntegrationError(domain.ServiceSlack, domain.CodeSlackUnexpectedError,
			"slack bot token not configured", nil)
	}
	created, err := n.api.CreateConversationContext(ctx, slackapi.CreateConversationParams{
		ChannelName: strings.TrimPrefix(name, "#"),
		IsPrivate:   false,
	})
	if err != nil {
		return "", classify(err)
	}
	n.logger.Info("created slack channel", zap.String("channel", name), zap.String("id", created.ID))
	return created.ID, nil
}

func buildBlocks(note Notification) []slackapi.Block {
	number := note.IncidentNumber
	if number == "" {
		number = "N/A"
	}

	blocks := []slackapi.Block{
		slackapi.NewHeaderBlock(
			slackapi.NewTextBlockObject(slackapi.PlainTextType, "🎫 New Incident Created: "+number, true, false)),
		slackapi.NewSectionBlock(
			slackapi.NewTextBlockObject(slackapi.MarkdownType, "*"+note.ShortDescription+"*", false, false), nil, nil),
		slackapi.NewDividerBlock(),
	}

	var fields []*slackapi.TextBlockObject
	if note.AssignmentGroup != "" {
		fields = append(fields, slackapi.NewTextBlockObject(slackapi.MarkdownType,
			"*Assignment Group:*\n"+note.AssignmentGroup, false, false))
	}
	if note.Urgency != "" {
		fields = append(fields, slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("*Urgency:*\n%s %s", urgencyMarker(note.Urgency), note.Urgency), false, false))
	}
	if note.Impact != "" {
		fields = append(fields, slackapi.NewTextBlockObject(slackapi.MarkdownType,
			"*Impact:*\n"+note.Impact, false, false))
	}
	if note.Caller != "" {
		fields = append(fields, slackapi.NewTextBlockObject(slackapi.MarkdownType,
			"*Reported By:*\n"+note.Caller, false, false))
	}
	if len(fields) > 0 {
		blocks = append(blocks, slackapi.NewSectionBlock(nil, fields, nil))
	}

	if note.Description != "" {
		blocks = append(blocks, slackapi.NewSectionBlock(
			slackapi.NewTextBlockObject(slackapi.MarkdownType,
				"*Description:*\n"+truncate(note.Description, descriptionLimit), false, false), nil, nil))
	}

	if note.IncidentNumber != "" && note.IncidentURL != "" {
		button := slackapi.NewButtonBlockElement("view_incident", note.IncidentNumber,
			slackapi.NewTextBlockObject(slackapi.PlainTextType, "View in ServiceNow", true, false))
		button.URL = note.IncidentURL
		button.Style = slackapi.StylePrimary
		blocks = append(blocks, slackapi.NewActionBlock("incident_actions", button))
	}

	return blocks
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func urgencyMarker(urgency string) string {
	lower := strings.ToLower(urgency)
	switch {
	case strings.Contains(lower, "critical") || urgency == "1":
		return "🔴"
	case strings.Contains(lower, "high") || urgency == "2":
		return "🟠"
	case strings.Contains(lower, "medium") || urgency == "3":
		return "🟡"
	default:
		return "🟢"
	}
}

// classify maps slack-go errors onto the integration taxonomy. Web API
// errors are bare snake_case tokens; anything else is unexpected.
func classify(err error) *domain.IntegrationError {
	var apiErr slackapi.SlackErrorResponse
	if errors.As(err, &apiErr) {
		return domain.NewIntegrationError(domain.ServiceSlack, domain.CodeSlackAPIError, apiErr.Error(), err)
	}
	msg := err.Error()
	if msg != "" && !strings.ContainsAny(msg, " :") {
		return domain.NewIntegrationError(domain.ServiceSlack, domain.CodeSlackAPIError, msg, err)
	}
	return domain.NewIntegrationError(domain.ServiceSlack, domain.CodeSlackUnexpectedError, msg, err)
}
