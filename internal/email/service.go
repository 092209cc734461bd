package email

import (
	"context"
)

// Service is the mail transport. Fire-and-forget from the core's
// perspective; delivery failures are local to the caller.
type Service interface {
	Send(ctx context.Context, to, subject, body string) error
}
