package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/relay/pkg/cli"
	"mercator-hq/relay/pkg/providerfactory"
	"mercator-hq/relay/pkg/routing"
	"mercator-hq/relay/pkg/security/secrets"
)

var configValidateFlags struct {
	checkCredentials bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect relay configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file with environment overrides, validate it and
build an adapter for every provider.

With --check-credentials the configured credential sources are queried and
the command fails when no provider has an API key.`,
	RunE: runConfigValidate,
}

func init() {
	configValidateCmd.Flags().BoolVar(&configValidateFlags.checkCredentials, "check-credentials", false, "look up provider API keys")
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Building adapters never looks credentials up, so an empty source is
	// enough to prove every provider is dispatchable.
	router, err := routing.NewFromConfig(cfg, secrets.StaticSource{})
	if err != nil {
		return cli.NewConfigError(path, err)
	}

	out := cmd.OutOrStdout()
	source := path
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(out, "✓ Configuration valid (%s)\n", source)
	fmt.Fprintf(out, "✓ Providers: %s\n", joinProviders(router))

	if !configValidateFlags.checkCredentials {
		return nil
	}

	creds, err := secrets.Build(cmd.Context(), secrets.BuildOptions{
		Sources:   cfg.Credentials.Sources,
		FileDir:   cfg.Credentials.FileDir,
		SSMPrefix: cfg.Credentials.SSMPrefix,
	})
	if err != nil {
		return cli.NewCommandError("config validate", err)
	}

	available, err := providerfactory.CheckCredentials(cmd.Context(), cfg, creds)
	if err != nil {
		return cli.NewCommandError("config validate", err)
	}
	fmt.Fprintf(out, "✓ Credentials found for: %v\n", available)
	return nil
}
