package main

import (
	"fmt"

	"github.com/bibliotek/elsago/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the configuration elsago resolves from the config file, a local
.env file, and ELSAGO_* environment variables. Credentials are masked.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set <api_key|inst_token> <value>",
	Short: "Set a configuration value",
	Long: `Set a value in the config file.

Example:
  elsago config set api_key 0123456789abcdef`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// ConfigResponse is the JSON output of the config command.
type ConfigResponse struct {
	Path      string `json:"path"`
	APIKey    string `json:"api_key,omitempty"`
	InstToken string `json:"inst_token,omitempty"`
}

// UpdateResponse is the JSON output of config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	resp := ConfigResponse{
		Path:      config.Path(),
		APIKey:    config.Mask(cfg.APIKey),
		InstToken: config.Mask(cfg.InstToken),
	}

	if humanOutput {
		fmt.Printf("config file: %s\n", resp.Path)
		fmt.Printf("api_key:     %s\n", resp.APIKey)
		fmt.Printf("inst_token:  %s\n", resp.InstToken)
		return nil
	}
	return outputJSON(resp)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Read the file only, without env overrides, so a set doesn't bake
	// an environment value into the file.
	cfg, err := config.LoadFile()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	switch key {
	case "api_key":
		cfg.APIKey = value
	case "inst_token":
		cfg.InstToken = value
	default:
		exitWithError(ExitError, "unknown config key %q (expected api_key or inst_token)", key)
	}

	if err := config.Save(cfg); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("set %s\n", key)
		return nil
	}
	return outputJSON(UpdateResponse{Status: "ok", Key: key})
}
