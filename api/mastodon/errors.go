package mastodon

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrAuthentication = errors.New("failed to verify the credentials")

var ErrFetch = errors.New("failed to fetch the statuses")

var ErrDeletion = errors.New("failed to delete the status")

// StatusCodeError carries a non-success HTTP response code.
type StatusCodeError struct {
	Code int
}

func (e StatusCodeError) Error() string {
	return fmt.Sprintf("response status %d %s", e.Code, http.StatusText(e.Code))
}

// StatusCode returns the HTTP response code carried by err, or zero when the failure happened before any response.
func StatusCode(err error) (code int) {
	var errStatus StatusCodeError
	if errors.As(err, &errStatus) {
		code = errStatus.Code
	}
	return
}
