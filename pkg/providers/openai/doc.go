// Package openai implements the OpenAI provider adapter.
//
// Requests go to POST {base}/v1/chat/completions with an
// "Authorization: Bearer <key>" header. The body carries model, messages,
// max_tokens and temperature; every message role is passed through as given.
// The reply is read from choices[0].message.content.
//
// # Basic Usage
//
//	p, err := openai.NewProvider(openai.Config{
//	    Credentials: secrets.NewEnvSource(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reply, err := p.Send(ctx, []providers.ChatMessage{
//	    {Role: "user", Content: "Hello!"},
//	}, 512, 0.7)
package openai
