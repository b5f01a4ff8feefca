package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	testhelpers "mercator-hq/relay/internal/providers"
	"mercator-hq/relay/pkg/providers"
)

// executeCommand runs the root command with args and returns stdout.
// Package-level flag variables are reset first because cobra keeps them
// between runs.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile = defaultConfigFile
	chatFlags.provider = string(providers.DefaultProvider)
	chatFlags.message = ""
	chatFlags.system = ""
	chatFlags.maxTokens = providers.DefaultMaxTokens
	chatFlags.temperature = providers.DefaultTemperature
	chatFlags.output = "text"
	configValidateFlags.checkCredentials = false
	runFlags.listenAddress = ""
	runFlags.logLevel = ""
	runFlags.watch = false
	runFlags.dryRun = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return stdout.String(), err
}

// writeConfig writes a config file pointing every provider at baseURL.
func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()

	content := fmt.Sprintf(`server:
  listen_address: "127.0.0.1:0"
  static_dir: ""
providers:
  openai:
    base_url: %q
  anthropic:
    base_url: %q
  gemini:
    base_url: %q
telemetry:
  logging:
    level: error
`, baseURL, baseURL, baseURL)

	path := filepath.Join(t.TempDir(), "relay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "relay "+Version)
	require.Contains(t, out, "Go Version:")
}

func TestChatCommand_Text(t *testing.T) {
	server := testhelpers.NewMockServer()
	defer server.Close()
	server.SetResponse("/v1/chat/completions", testhelpers.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testhelpers.MockOpenAIResponse("Hello there", "gpt-4o-mini"),
	})
	t.Setenv("OPENAI_API_KEY", "sk-test")

	out, err := executeCommand(t, "chat", "--config", writeConfig(t, server.URL()),
		"--message", "hi", "--system", "be brief", "--max-tokens", "64")
	require.NoError(t, err)
	require.Equal(t, "Hello there\n", out)

	last, ok := server.LastRequest()
	require.True(t, ok)
	var body struct {
		Messages  []providers.ChatMessage `json:"messages"`
		MaxTokens int                     `json:"max_tokens"`
	}
	require.NoError(t, last.JSON(&body))
	require.Equal(t, []providers.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	}, body.Messages)
	require.Equal(t, 64, body.MaxTokens)
}

func TestChatCommand_JSON(t *testing.T) {
	server := testhelpers.NewMockServer()
	defer server.Close()
	server.SetResponse("/v1/messages", testhelpers.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testhelpers.MockAnthropicResponse("bonjour", "claude-3-5-haiku-latest"),
	})
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	out, err := executeCommand(t, "chat", "--config", writeConfig(t, server.URL()),
		"--provider", "anthropic", "--message", "hello", "--output", "json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, map[string]string{"provider": "anthropic", "reply": "bonjour"}, got)
}

func TestChatCommand_UnsupportedProvider(t *testing.T) {
	server := testhelpers.NewMockServer()
	defer server.Close()

	_, err := executeCommand(t, "chat", "--config", writeConfig(t, server.URL()),
		"--provider", "unknown-llm", "--message", "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unsupported provider: unknown-llm")
	require.Zero(t, server.GetRequestCount())
}

func TestChatCommand_MissingCredential(t *testing.T) {
	server := testhelpers.NewMockServer()
	defer server.Close()
	t.Setenv("GEMINI_API_KEY", "")

	_, err := executeCommand(t, "chat", "--config", writeConfig(t, server.URL()),
		"--provider", "gemini", "--message", "hi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Missing GEMINI_API_KEY")
	require.Zero(t, server.GetRequestCount())
}

func TestChatCommand_BadOutput(t *testing.T) {
	_, err := executeCommand(t, "chat", "--message", "hi", "--output", "xml")
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	out, err := executeCommand(t, "config", "validate", "--config", writeConfig(t, "http://localhost:1"))
	require.NoError(t, err)
	require.Contains(t, out, "✓ Configuration valid")
	require.Contains(t, out, "anthropic, gemini, openai")
}

func TestConfigValidate_CheckCredentials(t *testing.T) {
	path := writeConfig(t, "http://localhost:1")

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	_, err := executeCommand(t, "config", "validate", "--config", path, "--check-credentials")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no provider credentials configured")

	t.Setenv("GEMINI_API_KEY", "AIza-test")
	out, err := executeCommand(t, "config", "validate", "--config", path, "--check-credentials")
	require.NoError(t, err)
	require.Contains(t, out, "Credentials found for: [gemini]")
}

func TestConfigValidate_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers:\n  mistral: {}\n"), 0o600))

	_, err := executeCommand(t, "config", "validate", "--config", path)
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "config error in "+path))
}

func TestConfigValidate_ExplicitMissingFile(t *testing.T) {
	_, err := executeCommand(t, "config", "validate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRunCommand_DryRun(t *testing.T) {
	out, err := executeCommand(t, "run", "--config", writeConfig(t, "http://localhost:1"), "--dry-run", "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, out, "✓ Configuration valid (providers: anthropic, gemini, openai)")
}

func TestRunCommand_InvalidLogLevel(t *testing.T) {
	_, err := executeCommand(t, "run", "--config", writeConfig(t, "http://localhost:1"), "--dry-run", "--log-level", "loud")
	require.Error(t, err)
}
