package driven

import "github.com/custodia-labs/sheetmail/internal/core/domain"

// MessageDecoder converts a raw message payload into an EmailRecord.
// Body decoding problems are reported inside the record's content, never as
// an error, so decoding cannot halt a run.
type MessageDecoder interface {
	Decode(raw *domain.RawMessage) domain.EmailRecord
}
