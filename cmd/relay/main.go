// Relay is a single HTTP endpoint in front of several LLM chat APIs.
//
// Clients POST a provider-agnostic conversation to /api/chat; the relay
// translates it to the selected provider's wire format (OpenAI, Anthropic
// or Gemini), calls the provider with a server-side API key and returns the
// reply text.
//
// Usage:
//
//	# Start the server (reads config.yaml when present)
//	relay run
//
//	# Start with a config file and reload it on change
//	relay run --config /etc/relay/config.yaml --watch
//
//	# Send one chat request from the command line
//	relay chat --provider anthropic --message "hello"
//
//	# Check a config file
//	relay config validate --config relay.yaml
package main

func main() {
	Execute()
}
