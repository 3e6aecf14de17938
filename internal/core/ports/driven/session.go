package driven

import "context"

// Authenticator establishes an authorised session with the mail and sheet
// providers.
//
// When no usable token exists and no client secrets are available,
// Authenticate returns an error wrapping domain.ErrAuthRequired and performs
// no other side effects.
type Authenticator interface {
	Authenticate(ctx context.Context) (Session, error)
}

// Session is an authenticated handle from which API clients are built.
type Session interface {
	// MessageSource returns a client for the mailbox.
	MessageSource(ctx context.Context) (MessageSource, error)

	// RowSink returns a client for the destination spreadsheet.
	RowSink(ctx context.Context) (RowSink, error)

	// Account returns the email address of the authorised mailbox.
	Account(ctx context.Context) (string, error)
}
