// Package handlers implements the relay's chat endpoint.
//
// ChatService holds the request-to-response logic: decode the body, apply
// defaults, route to the selected provider and map failures to an
// {"error": ...} body. ChatHandler exposes it as POST /api/chat; the Lambda
// entrypoint calls ChatService.Chat directly with the event body.
//
// Status codes:
//
//   - 200: {"provider": ..., "reply": ...}
//   - 400: malformed body or missing messages
//   - 405: any method other than POST
//   - 413: body larger than the configured limit
//   - 500: any routing or provider failure, with the failure message
package handlers
