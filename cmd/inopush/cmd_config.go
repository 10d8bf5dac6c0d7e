package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"inopush/internal/config"
)

// runConfigInit writes the default configuration
func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	return nil
}

// runConfigShow prints the effective configuration with secrets masked
func runConfigShow(cmd *cobra.Command, args []string) error {
	shown := *cfg
	shown.LLM.APIKey = mask(shown.LLM.APIKey)
	shown.GitHub.Token = mask(shown.GitHub.Token)

	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
