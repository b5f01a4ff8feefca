// Package anthropic implements the Anthropic provider adapter.
//
// Requests go to POST {base}/v1/messages with the "x-api-key" and
// "anthropic-version" headers. Messages with role "system" become the
// top-level system prompt; all other roles are sent as given. The reply is
// the concatenation of every text block in the response content.
package anthropic
