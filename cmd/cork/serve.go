package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/config"
	"github.com/zulandar/corkboard/internal/ghsync"
	"github.com/zulandar/corkboard/internal/notify"
	"github.com/zulandar/corkboard/internal/server"
	"github.com/zulandar/corkboard/internal/sweep"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Corkboard server",
		Long:  "Runs the HTTP server (webhook endpoint and sync API) and, when configured, the periodic drift sweep.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Outbound tracker client; nil when no token is configured, in which
	// case pushes fail with "not connected" instead of going out unsigned.
	var client *ghsync.Client
	var tracker ghsync.IssueStater
	if cfg.Connected() {
		client = ghsync.NewClient(cfg.GitHub.Token)
		tracker = client
	} else {
		log.Printf("serve: no GitHub token configured, outbound sync disabled")
	}

	recon := ghsync.NewReconciler(gormDB)
	sync := ghsync.NewSynchronizer(gormDB, tracker)
	dispatcher := ghsync.NewDispatcher(sync, &notifierSink{n: buildNotifier(cfg)})

	if cfg.GitHub.WebhookSecret == "" {
		log.Printf("serve: no webhook secret configured, all deliveries will be rejected")
	}

	if cfg.Sweep.Schedule != "" {
		if client == nil {
			log.Printf("serve: sweep configured but no GitHub token, sweep disabled")
		} else {
			sw := sweep.New(gormDB, client, recon)
			go func() {
				if err := sw.Schedule(ctx, cfg.Sweep.Schedule); err != nil {
					log.Printf("serve: %v", err)
				}
			}()
		}
	}

	return server.Start(ctx, server.StartOpts{
		Deps: server.Deps{
			DB:         gormDB,
			Verifier:   ghsync.NewVerifier(cfg.GitHub.WebhookSecret),
			Reconciler: recon,
			Sync:       sync,
			Dispatcher: dispatcher,
		},
		Port: cfg.Server.Port,
		Out:  cmd.OutOrStdout(),
	})
}

// buildNotifier assembles the failure sinks from config. The log sink is
// always present.
func buildNotifier(cfg *config.Config) notify.Notifier {
	sinks := []notify.Notifier{notify.LogSink{}}

	if cfg.Notify.Slack.BotToken != "" {
		s, err := notify.NewSlack(notify.SlackOpts{
			BotToken:  cfg.Notify.Slack.BotToken,
			ChannelID: cfg.Notify.Slack.ChannelID,
		})
		if err != nil {
			log.Printf("serve: slack sink: %v", err)
		} else {
			sinks = append(sinks, s)
		}
	}

	if cfg.Notify.Discord.BotToken != "" {
		d, err := notify.NewDiscord(notify.DiscordOpts{
			BotToken:  cfg.Notify.Discord.BotToken,
			ChannelID: cfg.Notify.Discord.ChannelID,
		})
		if err != nil {
			log.Printf("serve: discord sink: %v", err)
		} else {
			sinks = append(sinks, d)
		}
	}

	return notify.NewMulti(sinks...)
}

// notifierSink adapts a notify.Notifier to the dispatcher's error sink.
type notifierSink struct {
	n notify.Notifier
}

func (s *notifierSink) SyncFailed(cardID string, errs []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.n.SyncFailure(ctx, notify.Failure{CardID: cardID, Errors: errs, When: time.Now()})
}
