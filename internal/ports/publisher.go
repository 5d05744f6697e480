package ports

import "context"

// Publisher fans committed setting writes out to other processes.
// Publishing is best effort: callers log failures and never roll back
// the write that triggered the event.
type Publisher interface {
	// PublishRaw sends an already-encoded payload to the given topic ARN.
	PublishRaw(ctx context.Context, arn string, payload []byte) error
}
