package httputil

import (
	"net/http"
	"strconv"
)

const defaultListLimit = 10000

// ListParams parses the skip/limit query parameters used by list endpoints.
// Values that are absent or malformed fall back to skip=0 and a generous
// default limit; there is no cursor pagination.
func ListParams(r *http.Request) (offset, limit int) {
	limit = defaultListLimit

	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return offset, limit
}
