package httpclients

import (
	"time"

	"resty.dev/v3"
)

// NewClient builds a resty client with the shared defaults for upstream calls.
// The name shows up in logs so failures can be traced to a specific upstream.
func NewClient(name string) *resty.Client {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "storefront-gateway/"+name).
		SetRetryCount(1)
	return client
}
