package domain

// RawMessage is a full message payload as returned by the Message Source.
// It is read-only input to the decoder.
type RawMessage struct {
	// ID is the provider-assigned message identifier.
	ID string

	// ThreadID groups messages of the same conversation.
	ThreadID string

	// LabelIDs are the provider labels on the message (e.g. "UNREAD", "INBOX").
	LabelIDs []string

	// Payload is the top-level MIME part. May be nil.
	Payload *MessagePart
}

// MessagePart is one node of the MIME tree.
type MessagePart struct {
	// MIMEType is the declared content type, e.g. "text/plain".
	MIMEType string

	// Headers are the raw name/value pairs in wire order.
	Headers []Header

	// Body carries the inline data of this part. May be nil.
	Body *MessageBody

	// Parts are the child parts for multipart content.
	Parts []*MessagePart
}

// Header is a single message header.
type Header struct {
	Name  string
	Value string
}

// MessageBody holds the encoded inline data of a part.
type MessageBody struct {
	// Data is URL-safe base64 encoded content.
	Data string

	// Size is the decoded size in bytes as reported by the provider.
	Size int64
}

// HasParts reports whether the part is a container of child parts.
func (p *MessagePart) HasParts() bool {
	return p != nil && len(p.Parts) > 0
}

// InlineData returns the encoded inline body data, or "" if there is none.
func (p *MessagePart) InlineData() string {
	if p == nil || p.Body == nil {
		return ""
	}
	return p.Body.Data
}
