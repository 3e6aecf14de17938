package gmail

import (
	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// MessageToRaw converts a Gmail message fetched with Format("full") to a
// RawMessage. Only the fields the decoder reads are carried over.
func MessageToRaw(msg *gmail.Message) *domain.RawMessage {
	if msg == nil {
		return nil
	}
	return &domain.RawMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		LabelIDs: msg.LabelIds,
		Payload:  convertPart(msg.Payload),
	}
}

func convertPart(part *gmail.MessagePart) *domain.MessagePart {
	if part == nil {
		return nil
	}

	out := &domain.MessagePart{MIMEType: part.MimeType}

	for _, h := range part.Headers {
		if h == nil {
			continue
		}
		out.Headers = append(out.Headers, domain.Header{Name: h.Name, Value: h.Value})
	}

	if part.Body != nil {
		out.Body = &domain.MessageBody{Data: part.Body.Data, Size: part.Body.Size}
	}

	for _, child := range part.Parts {
		if converted := convertPart(child); converted != nil {
			out.Parts = append(out.Parts, converted)
		}
	}

	return out
}

// IsUnread reports whether the message still carries the UNREAD label.
func IsUnread(msg *gmail.Message) bool {
	for _, label := range msg.LabelIds {
		if label == LabelUnread {
			return true
		}
	}
	return false
}
