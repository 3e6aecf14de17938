package driven

import (
	"context"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// MessageSource is the mailbox the job reads from.
type MessageSource interface {
	// ListUnread returns the IDs of unread inbox messages, newest first as
	// ordered by the provider, capped at the configured maximum.
	ListUnread(ctx context.Context) ([]string, error)

	// Get fetches the full payload of a message.
	Get(ctx context.Context, id string) (*domain.RawMessage, error)

	// MarkRead removes the unread marker from a message.
	MarkRead(ctx context.Context, id string) error
}
