package source

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/wanderlab/voyago/utils/request"
)

// ClassifyHTTP maps a transport-level error onto an ErrorKind. Adapters use
// it so every provider failure resolves to the same taxonomy.
func ClassifyHTTP(err error) ErrorKind {
	var se *request.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusTooManyRequests:
			return RateLimited
		case se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden:
			return AuthInvalid
		case se.Code >= 500:
			return Unreachable
		default:
			return MalformedResponse
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Timeout
	}
	return Unreachable
}
