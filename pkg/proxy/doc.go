// Package proxy implements the relay's HTTP surface for chat requests.
//
// The package decodes POST /api/chat bodies into providers.ChatRequest
// values, applying the documented defaults, and maps failures to JSON
// error bodies:
//
//	req, err := proxy.ParseChatRequest(w, r, cfg.Server.MaxBodyBytes)
//	if err != nil {
//	    status, body := proxy.HandleError(err)
//	    proxy.WriteJSONResponse(w, status, body)
//	    return
//	}
//
// Client mistakes (malformed JSON, missing messages, oversized bodies) are
// RequestErrors carrying a 4xx status. Every failure from the router or a
// provider adapter becomes a 500 whose "error" is the failure message.
//
// Subpackages:
//
//   - handlers: the chat endpoint and the shared ChatService
//   - middleware: request ID, logging, recovery, CORS, security headers, metrics
//   - types: JSON request and response bodies
package proxy
