package proxy

import (
	"errors"
	"net/http"

	"mercator-hq/relay/pkg/proxy/types"
)

// HandleError maps an error to an HTTP status and response body.
//
// Client errors keep their own status. Every other failure, including
// anything raised by the router or a provider adapter, is a 500 whose
// message is the error text.
func HandleError(err error) (int, *types.ErrorResponse) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status, reqErr.ToErrorResponse()
	}

	return http.StatusInternalServerError, types.NewErrorResponse(err.Error())
}
