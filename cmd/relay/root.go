package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/relay/pkg/cli"
	"mercator-hq/relay/pkg/config"
)

const defaultConfigFile = "config.yaml"

// Global flags
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Unified chat relay for OpenAI, Anthropic and Gemini",
	Long: `Relay exposes one chat endpoint in front of several LLM providers.

Clients send {provider, messages, maxTokens, temperature} to POST /api/chat.
The relay maps the request to the provider's API, authenticates with a
server-side key and returns {provider, reply}.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
}

// loadConfig loads the config file with environment overrides. A missing
// default config.yaml means built-in defaults; a missing file that was
// named explicitly is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path := cfgFile
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		path = ""
	}

	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, path, cli.NewConfigError(path, err)
	}
	return cfg, path, nil
}
