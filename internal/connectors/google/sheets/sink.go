package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/sheetmail/internal/connectors/google"
	"github.com/custodia-labs/sheetmail/internal/core/domain"
	"github.com/custodia-labs/sheetmail/internal/core/ports/driven"
	"github.com/custodia-labs/sheetmail/internal/logger"
)

// Verify interface compliance.
var _ driven.RowSink = (*Sink)(nil)

// Sink appends rows to a spreadsheet range.
type Sink struct {
	svc     *sheets.Service
	cfg     *Config
	limiter *google.RateLimiter
}

// NewSink creates a Sheets row sink.
func NewSink(svc *sheets.Service, cfg *Config, limiter *google.RateLimiter) *Sink {
	return &Sink{svc: svc, cfg: cfg, limiter: limiter}
}

// Append writes all rows in a single values.append call and returns the
// number of rows the service reports as updated.
func (s *Sink) Append(ctx context.Context, rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if s.cfg.SpreadsheetID == "" {
		return 0, fmt.Errorf("append rows: %w: spreadsheet id is empty", domain.ErrConfigInvalid)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	vr := &sheets.ValueRange{Values: toValues(rows)}
	resp, err := s.svc.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, s.cfg.Range, vr).
		ValueInputOption(s.cfg.ValueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("append rows: %w", google.WrapError(err))
	}

	updated := len(rows)
	if resp.Updates != nil {
		updated = int(resp.Updates.UpdatedRows)
		logger.Debug("appended to %s", resp.Updates.UpdatedRange)
	}
	return updated, nil
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return values
}
