package palette

import "net/http"

// Opt defines an extractor option
type Opt func(*Extractor)

// WithHTTPClient overrides the HTTP client used to fetch artwork
func WithHTTPClient(client *http.Client) Opt {
	return func(e *Extractor) {
		e.client = client
	}
}
