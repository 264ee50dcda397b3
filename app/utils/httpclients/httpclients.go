package httpclients

import (
	"time"

	"resty.dev/v3"
)

// NewClient builds a resty client with the shared defaults for outbound calls.
func NewClient(name string) *resty.Client {
	return resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", name)
}
