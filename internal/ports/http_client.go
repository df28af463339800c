package ports

import "net/http"

// HTTPClient abstracts the drive service transport for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
