package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
)

type debugLogsRepo struct {
	q querier
}

func (r *debugLogsRepo) AppendLog(ctx context.Context, e domain.DebugLogEntry) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO debug_logs (id, flow_id, level, message, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.FlowID, e.Level, e.Message, e.Detail, e.CreatedAt,
	)
	return err
}

func (r *debugLogsRepo) ListRecentLogs(ctx context.Context, limit int) ([]domain.DebugLogEntry, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, flow_id, level, message, detail, created_at
		FROM debug_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

func (r *debugLogsRepo) ListFlowLogs(ctx context.Context, flowID string, limit int) ([]domain.DebugLogEntry, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, flow_id, level, message, detail, created_at
		FROM debug_logs
		WHERE flow_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, flowID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

func (r *debugLogsRepo) DeleteLogsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM debug_logs WHERE created_at < ?`, cutoff)
	return err
}

func collectLogs(rows *sql.Rows) ([]domain.DebugLogEntry, error) {
	var entries []domain.DebugLogEntry
	for rows.Next() {
		var e domain.DebugLogEntry
		if err := rows.Scan(&e.ID, &e.FlowID, &e.Level, &e.Message, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
