package types

// Client-facing error messages.
const (
	MessageMessagesRequired = "messages[] required: [{ role, content }]"
	MessageInvalidJSON      = "invalid JSON body"
	MessageInvalidMessages  = "messages must be an array of { role, content } objects"
	MessageBodyTooLarge     = "request body too large"
	MessageMethodNotAllowed = "method not allowed"
	MessageNotFound         = "not found"
	MessageServerError      = "Server error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error body with the given message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}
