package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mercator-hq/relay/pkg/cli"
	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/proxy/types"
	"mercator-hq/relay/pkg/routing"
	"mercator-hq/relay/pkg/security/secrets"
)

var chatFlags struct {
	provider    string
	message     string
	system      string
	maxTokens   int
	temperature float64
	output      string
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Send one chat request and print the reply",
	Long: `Send a single chat request through the same router the server uses.

Credentials are resolved from the configured sources, exactly as in
"relay run".

Examples:
  relay chat --message "Say hello"
  relay chat --provider gemini --system "Answer in French" --message "hello"
  relay chat --provider anthropic --message "hi" --output json`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&chatFlags.provider, "provider", "p", string(providers.DefaultProvider), "provider (openai, anthropic, gemini)")
	chatCmd.Flags().StringVarP(&chatFlags.message, "message", "m", "", "user message (required)")
	chatCmd.Flags().StringVar(&chatFlags.system, "system", "", "optional system message sent first")
	chatCmd.Flags().IntVar(&chatFlags.maxTokens, "max-tokens", providers.DefaultMaxTokens, "maximum output tokens")
	chatCmd.Flags().Float64Var(&chatFlags.temperature, "temperature", providers.DefaultTemperature, "sampling temperature")
	chatCmd.Flags().StringVarP(&chatFlags.output, "output", "o", "text", "output format (text, json)")
	_ = chatCmd.MarkFlagRequired("message")
}

// chatResult prints as the bare reply in text mode.
type chatResult types.ChatResponse

func (r chatResult) String() string { return r.Reply }

func runChat(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(chatFlags.output)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	creds, err := secrets.Build(ctx, secrets.BuildOptions{
		Sources:   cfg.Credentials.Sources,
		FileDir:   cfg.Credentials.FileDir,
		SSMPrefix: cfg.Credentials.SSMPrefix,
	})
	if err != nil {
		return cli.NewCommandError("chat", err)
	}

	// Diagnostics go to stderr so stdout carries only the reply.
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

	router, err := routing.NewFromConfig(cfg, creds, routing.WithLogger(logger))
	if err != nil {
		return cli.NewCommandError("chat", err)
	}

	var messages []providers.ChatMessage
	if chatFlags.system != "" {
		messages = append(messages, providers.ChatMessage{Role: "system", Content: chatFlags.system})
	}
	messages = append(messages, providers.ChatMessage{Role: "user", Content: chatFlags.message})

	req := providers.ChatRequest{
		Provider:    providers.ProviderID(chatFlags.provider),
		Messages:    messages,
		MaxTokens:   chatFlags.maxTokens,
		Temperature: chatFlags.temperature,
	}

	reply, err := router.Route(ctx, req)
	if err != nil {
		return cli.NewCommandError("chat", err)
	}

	result := chatResult{Provider: chatFlags.provider, Reply: reply}
	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("failed to write reply: %w", err)
	}
	return nil
}
