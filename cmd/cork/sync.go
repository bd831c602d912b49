package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/card"
	"github.com/zulandar/corkboard/internal/ghsync"
)

func newSyncCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sync <card-id>",
		Short: "Push a card's completion state to its linked GitHub issues",
		Long:  "Pushes the card's stored completion flag to every linked issue and prints the per-link report. Links already in the desired state are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	return cmd
}

func runSync(cmd *cobra.Command, configPath, cardID string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if !cfg.Connected() {
		return fmt.Errorf("sync: not connected to GitHub, run `cork connect` or set GITHUB_TOKEN")
	}

	crd, err := card.Get(gormDB, cardID)
	if err != nil {
		return err
	}

	sync := ghsync.NewSynchronizer(gormDB, ghsync.NewClient(cfg.GitHub.Token))
	rep, err := sync.Push(cmd.Context(), cardID, crd.IsCompleted)
	if err != nil {
		if errors.Is(err, ghsync.ErrNotConnected) {
			return fmt.Errorf("sync: not connected to GitHub")
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Card %s: %d of %d link(s) updated\n", cardID, rep.Updated, rep.Total)
	for _, e := range rep.Errors {
		fmt.Fprintf(out, "  error: %s\n", e)
	}
	if len(rep.Errors) > 0 {
		return fmt.Errorf("sync: %d link(s) failed", len(rep.Errors))
	}
	return nil
}
