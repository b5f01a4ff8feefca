// Package gemini implements the Google Gemini provider adapter.
//
// Requests go to POST {base}/v1beta/models/{model}:generateContent with the
// key in the "x-goog-api-key" header. Role "assistant" is sent as "model",
// system messages become the systemInstruction, and maxTokens maps to
// generationConfig.maxOutputTokens. The reply is the concatenation of the
// text parts of the first candidate.
package gemini
