package service

import (
	"context"
	"fmt"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

// DebugLogService exposes the recorded orchestration events read-only.
type DebugLogService struct {
	Store store.Store
}

// Recent returns the newest log entries, optionally filtered to one flow.
// A non-positive limit uses the default; limits are capped.
func (s *DebugLogService) Recent(ctx context.Context, flowID string, limit int) ([]domain.DebugLogEntry, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	var (
		entries []domain.DebugLogEntry
		err     error
	)
	if flowID != "" {
		entries, err = s.Store.DebugLogs().ListFlowLogs(ctx, flowID, limit)
	} else {
		entries, err = s.Store.DebugLogs().ListRecentLogs(ctx, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list debug logs: %w", err)
	}
	return entries, nil
}
