package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient builds the shared client used for provider calls. A zero
// timeout means no client-side deadline.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
