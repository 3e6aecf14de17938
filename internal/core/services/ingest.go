package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driving"
	"github.com/custodia-labs/sheetmail/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.Ingestor = (*IngestOrchestrator)(nil)

// IngestOrchestrator moves unread mail into the spreadsheet.
//
// A run authenticates, lists unread messages, drops those already in the
// ledger, then fetches and decodes the rest. Rows are appended in one call;
// only after that succeeds are messages marked read and the ledger saved,
// so a failed run can be repeated without duplicating rows.
type IngestOrchestrator struct {
	auth    driven.Authenticator
	ledger  driven.LedgerStore
	decoder driven.MessageDecoder
	newID   func() string
}

// NewIngestOrchestrator creates an orchestrator.
func NewIngestOrchestrator(
	auth driven.Authenticator,
	ledger driven.LedgerStore,
	decoder driven.MessageDecoder,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		auth:    auth,
		ledger:  ledger,
		decoder: decoder,
		newID:   uuid.NewString,
	}
}

// Run performs one ingestion pass.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *IngestOrchestrator) Run(ctx context.Context, opts driving.RunOptions) (*domain.RunReport, error) {
	report := &domain.RunReport{RunID: o.newID(), State: domain.RunIdle}

	logger.Section("run " + report.RunID)
	logger.Info("Starting email ingestion...")
	logger.Debug("dry run: %t", opts.DryRun)

	// 1. Authenticate
	session, err := o.auth.Authenticate(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			logger.Error("Authentication failed, aborting run: %v", err)
			report.State = domain.RunAborted
			return report, nil
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	source, err := session.MessageSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("open mailbox: %w", err)
	}

	// 2. List unread
	ids, err := source.ListUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unread: %w", err)
	}
	report.Listed = len(ids)
	logger.Info("Found %d unread emails.", len(ids))

	if len(ids) == 0 {
		logger.Info("No new emails to process.")
		return report, nil
	}

	// 3. Load ledger
	ledger, err := o.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	// 4. Fetch and decode the unseen messages, in listing order
	var (
		rows      [][]string
		processed []string
	)
	for _, id := range ids {
		if ledger.Contains(id) {
			report.Skipped++
			logger.Debug("skipping %s: already processed", id)
			continue
		}

		raw, err := source.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetch message: %w", err)
		}
		record := o.decoder.Decode(raw)
		rows = append(rows, record.Row())
		processed = append(processed, id)
	}

	if len(rows) == 0 {
		logger.Info("No valid new emails found (or all were duplicates).")
		return report, nil
	}

	if opts.DryRun {
		logger.Info("Dry run: %d rows decoded, nothing written.", len(rows))
		report.Rows = rows
		report.State = domain.RunPreviewed
		return report, nil
	}

	// 5a. Append the whole batch
	sink, err := session.RowSink(ctx)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	logger.Info("Appending %d rows to sheet...", len(rows))
	appended, err := sink.Append(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("append rows: %w", err)
	}
	report.Appended = appended
	if appended != len(rows) {
		logger.Warn("Sheet reported %d updated rows for %d sent.", appended, len(rows))
	}

	// 5b. Mark read, only after the append succeeded
	for _, id := range processed {
		if err := source.MarkRead(ctx, id); err != nil {
			return nil, fmt.Errorf("mark read: %w", err)
		}
	}

	// 5c. Persist
	ledger.Merge(processed)
	if err := o.ledger.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	report.State = domain.RunPersisted
	logger.Info("Success! Emails processed and marked as read.")
	return report, nil
}
