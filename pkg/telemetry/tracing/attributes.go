package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys in the "relay.*" namespace. Message contents are never
// attached to spans.
const (
	AttrProvider    = "relay.provider"
	AttrMessages    = "relay.messages"
	AttrMaxTokens   = "relay.max_tokens"
	AttrTemperature = "relay.temperature"
	AttrErrorKind   = "relay.error.kind"
	AttrReplyLength = "relay.reply.length"
)

// SetChatAttributes records the shape of a chat request on a span.
func SetChatAttributes(span trace.Span, provider string, messages, maxTokens int, temperature float64) {
	span.SetAttributes(
		attribute.String(AttrProvider, provider),
		attribute.Int(AttrMessages, messages),
		attribute.Int(AttrMaxTokens, maxTokens),
		attribute.Float64(AttrTemperature, temperature),
	)
}

// SetErrorAttributes records err on the span and marks it failed.
// The kind is a stable label such as "provider_http".
func SetErrorAttributes(span trace.Span, err error, kind string) {
	if err == nil {
		return
	}

	span.SetAttributes(attribute.String(AttrErrorKind, kind))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSuccess marks the span as completed and records the reply length.
func SetSuccess(span trace.Span, replyLength int) {
	span.SetAttributes(attribute.Int(AttrReplyLength, replyLength))
	span.SetStatus(codes.Ok, "")
}
