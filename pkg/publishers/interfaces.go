package publishers

import "context"

// Publisher delivers statement events to a downstream sink (SQS, HTTP, etc).
// Implementations must be safe to call once per fetched statement.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
