package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/corkboard/internal/config"
	"golang.org/x/term"
)

func newConnectCmd() *cobra.Command {
	var configPath string
	var tokenFile string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Store a GitHub access token for outbound sync",
		Long:  "Prompts for a GitHub token without echoing it and stores it in the token file referenced by the config (github.token_file).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(cmd, configPath, tokenFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "corkboard.yaml", "path to Corkboard config file")
	cmd.Flags().StringVar(&tokenFile, "token-file", "", "override the token file path")
	return cmd
}

func runConnect(cmd *cobra.Command, configPath, tokenFile string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	path := tokenFile
	if path == "" {
		path = cfg.GitHub.TokenFile
	}
	if path == "" {
		return fmt.Errorf("connect: no token file configured, set github.token_file or pass --token-file")
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, "GitHub token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("connect: read token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return fmt.Errorf("connect: empty token")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("connect: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("connect: write %s: %w", path, err)
	}

	fmt.Fprintf(out, "Token stored in %s\n", path)
	return nil
}
