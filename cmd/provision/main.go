// Command provision creates the standard TechNova support channels in Slack
// so notification routing has somewhere to land. Safe to re-run; existing
// channels are skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tasnees/IBM-hackathon/internal/config"
	"github.com/tasnees/IBM-hackathon/internal/observability"
	slackclient "github.com/tasnees/IBM-hackathon/internal/slack"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "list what would be created without creating anything")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Slack.BotToken == "" {
		log.Fatal("SLACK_BOT_TOKEN not set")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if *dryRun {
		for _, spec := range slackclient.DefaultChannels {
			fmt.Printf("would create: #%s (%s)\n", spec.Name, spec.Description)
		}
		return
	}

	notifier := slackclient.NewNotifier(cfg.Slack, logger)
	summary, err := notifier.ProvisionChannels(context.Background(), slackclient.DefaultChannels)
	if err != nil {
		log.Fatalf("failed to provision channels: %v", err)
	}

	fmt.Printf("created: %d, skipped: %d, failed: %d\n",
		len(summary.Created), len(summary.Skipped), len(summary.Failed))
	if len(summary.Failed) > 0 {
		os.Exit(1)
	}
}
