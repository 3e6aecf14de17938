package gmail

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/sheetmail/internal/connectors/google"
	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
	"github.com/custodia-labs/sheetmail/internal/logger"
)

// Verify interface compliance.
var _ driven.MessageSource = (*Source)(nil)

// Source reads and marks messages in a Gmail mailbox.
type Source struct {
	svc     *gmail.Service
	cfg     *Config
	limiter *google.RateLimiter
}

// NewSource creates a Gmail message source.
// A nil config uses the defaults; a nil limiter disables pacing.
func NewSource(svc *gmail.Service, cfg *Config, limiter *google.RateLimiter) *Source {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Source{svc: svc, cfg: cfg, limiter: limiter}
}

// ListUnread returns the IDs of messages matching the configured query,
// newest first, capped at MaxResults. Only the first page is read.
func (s *Source) ListUnread(ctx context.Context) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Users.Messages.List(s.cfg.User).
		Q(s.cfg.Query).
		MaxResults(s.cfg.MaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", google.WrapError(err))
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		if m == nil || m.Id == "" {
			continue
		}
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// Get fetches the full payload of a message.
func (s *Source) Get(ctx context.Context, id string) (*domain.RawMessage, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	msg, err := s.svc.Users.Messages.Get(s.cfg.User, id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", id, google.WrapError(err))
	}

	logger.Debug("fetched message %s (%s)", id, WebURL(id))
	if !IsUnread(msg) {
		logger.Debug("message %s was read after it was listed", id)
	}
	return MessageToRaw(msg), nil
}

// MarkRead removes the UNREAD label from a message.
func (s *Source) MarkRead(ctx context.Context, id string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	req := &gmail.ModifyMessageRequest{RemoveLabelIds: []string{LabelUnread}}
	if _, err := s.svc.Users.Messages.Modify(s.cfg.User, id, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("mark message %s read: %w", id, google.WrapError(err))
	}
	return nil
}

// Profile returns the email address of the mailbox owner.
func (s *Source) Profile(ctx context.Context) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	p, err := s.svc.Users.GetProfile(s.cfg.User).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get profile: %w", google.WrapError(err))
	}
	return p.EmailAddress, nil
}
