package middleware

import (
	"net/http"
	"time"
)

// timeoutBody is what http.TimeoutHandler writes on expiry. It mirrors the
// envelope writeError produces, since TimeoutHandler only accepts a string.
const timeoutBody = `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"request timed out"}}`

// Timeout bounds the total time a request may spend inside the API routes.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}
