package slack

import (
	"context"

	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"
)

// ChannelSpec names one support channel and its description.
type ChannelSpec struct {
	Name        string
	Description string
}

// DefaultChannels are the department channels notifications route to.
var DefaultChannels = []ChannelSpec{
	{Name: "cloud-support", Description: "Cloud Infrastructure support notifications"},
	{Name: "data-support", Description: "Data & Analytics support notifications"},
	{Name: "security-incidents", Description: "Security team incident notifications"},
	{Name: "collab-support", Description: "Collaboration & Productivity support notifications"},
	{Name: "fintech-support", Description: "Financial Technology support notifications"},
	{Name: "devtools-support", Description: "Developer Tools support notifications"},
	{Name: "itsm-support", Description: "IT Service Management support notifications"},
	{Name: "erp-support", Description: "ERP support notifications"},
	{Name: "iot-support", Description: "IoT & Industrial support notifications"},
	{Name: "general-support", Description: "General support notifications (fallback)"},
}

// ProvisionSummary tallies a provisioning run.
type ProvisionSummary struct {
	Created []string
	Skipped []string
	Failed  []string
}

// ProvisionChannels creates the channels that do not exist yet. Topic and
// purpose are set best effort; their failures are ignored.
func (n *Notifier) ProvisionChannels(ctx context.Context, specs []ChannelSpec) (ProvisionSummary, error) {
	var summary ProvisionSummary

	existing, err := n.listChannelNames(ctx)
	if err != nil {
		return summary, err
	}

	for _, spec := range specs {
		if existing[spec.Name] {
			summary.Skipped = append(summary.Skipped, spec.Name)
			continue
		}

		created, err := n.api.CreateConversationContext(ctx, slackapi.CreateConversationParams{
			ChannelName: spec.Name,
			IsPrivate:   false,
		})
		if err != nil {
			n.logger.Warn("failed to create channel", zap.String("channel", spec.Name), zap.Error(err))
			summary.Failed = append(summary.Failed, spec.Name)
			continue
		}

		if _, err := n.api.SetTopicOfConversationContext(ctx, created.ID, spec.Description); err != nil {
			n.logger.Debug("failed to set channel topic", zap.String("channel", spec.Name), zap.Error(err))
		}
		if _, err := n.api.SetPurposeOfConversationContext(ctx, created.ID, "TechNova Support - "+spec.Description); err != nil {
			n.logger.Debug("failed to set channel purpose", zap.String("channel", spec.Name), zap.Error(err))
		}

		n.logger.Info("created channel", zap.String("channel", spec.Name), zap.String("id", created.ID))
		summary.Created = append(summary.Created, spec.Name)
	}

	return summary, nil
}

func (n *Notifier) listChannelNames(ctx context.Context) (map[string]bool, error) {
	names := make(map[string]bool)
	params := &slackapi.GetConversationsParameters{
		Types: []string{"public_channel", "private_channel"},
		Limit: 200,
	}
	for {
		channels, cursor, err := n.api.GetConversationsContext(ctx, params)
		if err != nil {
			return nil, classify(err)
		}
		for _, ch := range channels {
			names[ch.Name] = true
		}
		if cursor == "" {
			return names, nil
		}
		params.Cursor = cursor
	}
}
