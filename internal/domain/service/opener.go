package service

import "context"

// URLOpener hands a URL to the platform's external-open capability, such as
// the default browser. Opening is best effort.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}
