package message

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
	"github.com/custodia-labs/sheetmail/internal/normalisers/html"
)

// Ensure Decoder implements the interface.
var _ driven.MessageDecoder = (*Decoder)(nil)

const (
	mimeTextPlain = "text/plain"
	mimeTextHTML  = "text/html"
)

// Decoder turns RawMessages into EmailRecords.
type Decoder struct {
	limit int
}

// New creates a decoder that truncates content at ContentLimit.
func New() *Decoder {
	return &Decoder{limit: ContentLimit}
}

// Decode extracts headers and the plain-text body of raw.
// It never fails: body decoding errors become diagnostic content.
func (d *Decoder) Decode(raw *domain.RawMessage) domain.EmailRecord {
	rec := domain.EmailRecord{Subject: domain.NoSubject}
	if raw == nil {
		return rec
	}
	rec.ID = raw.ID

	if raw.Payload != nil {
		for _, h := range raw.Payload.Headers {
			switch {
			case strings.EqualFold(h.Name, "from"):
				rec.From = h.Value
			case strings.EqualFold(h.Name, "subject"):
				rec.Subject = h.Value
			case strings.EqualFold(h.Name, "date"):
				rec.Date = h.Value
			}
		}
	}

	body, err := extractBody(raw.Payload)
	if err != nil {
		body = fmt.Sprintf("(Error decoding email body: %s)", err)
	}
	rec.Content = Normalise(body, d.limit)

	return rec
}

// extractBody selects and decodes the body text of payload.
func extractBody(payload *domain.MessagePart) (string, error) {
	if payload == nil {
		return "", nil
	}

	if !payload.HasParts() {
		return DecodeData(payload.InlineData())
	}

	if part := topLevelPart(payload.Parts, mimeTextPlain); part != nil {
		text, err := DecodeData(part.InlineData())
		if err != nil || text != "" {
			return text, err
		}
	}

	if data := payload.InlineData(); data != "" {
		text, err := DecodeData(data)
		if err != nil || text != "" {
			return text, err
		}
	}

	if part := findPart(payload.Parts, mimeTextPlain); part != nil {
		text, err := DecodeData(part.InlineData())
		if err != nil || text != "" {
			return text, err
		}
	}

	if part := findPart(payload.Parts, mimeTextHTML); part != nil {
		text, err := DecodeData(part.InlineData())
		if err != nil {
			return "", err
		}
		return html.ToText(text), nil
	}

	return "", nil
}

// topLevelPart returns the first direct child of the given MIME type that
// carries data.
func topLevelPart(parts []*domain.MessagePart, mimeType string) *domain.MessagePart {
	for _, p := range parts {
		if p != nil && strings.EqualFold(p.MIMEType, mimeType) && p.InlineData() != "" {
			return p
		}
	}
	return nil
}

// findPart returns the first part of the given MIME type that carries data.
// Top-level parts are searched before nested ones.
func findPart(parts []*domain.MessagePart, mimeType string) *domain.MessagePart {
	if p := topLevelPart(parts, mimeType); p != nil {
		return p
	}
	for _, p := range parts {
		if p.HasParts() {
			if found := findPart(p.Parts, mimeType); found != nil {
				return found
			}
		}
	}
	return nil
}

// DecodeData decodes URL-safe base64 data into UTF-8 text.
// Padding is optional.
func DecodeData(data string) (string, error) {
	if data == "" {
		return "", nil
	}

	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("invalid UTF-8 sequence at byte %d", invalidUTF8Offset(b))
	}
	return string(b), nil
}

// invalidUTF8Offset returns the offset of the first invalid byte in b.
func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
