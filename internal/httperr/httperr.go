// Package httperr defines the typed error returned for non-2xx HTTP responses.
package httperr

import "fmt"

// StatusError reports a non-2xx HTTP response. The response body is carried
// along so logs can show the server's error detail without re-running the
// request.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP status error: %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP status error: %d. %s", e.StatusCode, e.Body)
}
