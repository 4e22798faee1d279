package middleware

import (
	"encoding/json"
	"net/http"
)

// jsonEncode writes the envelope for responses produced inside middleware,
// which cannot reach the handler package's writers without an import cycle.
func jsonEncode(w http.ResponseWriter, value any) error {
	return json.NewEncoder(w).Encode(value)
}
