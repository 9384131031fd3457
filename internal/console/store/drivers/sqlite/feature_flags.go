package sqlite

import (
	"context"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
)

type featureFlagsRepo struct {
	q querier
}

func (r *featureFlagsRepo) GetFlag(ctx context.Context, key string) (domain.FeatureFlag, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT key, enabled, description, updated_at
		FROM feature_flags WHERE key = ?`, key)

	var (
		f       domain.FeatureFlag
		enabled int
	)
	if err := row.Scan(&f.Key, &enabled, &f.Description, &f.UpdatedAt); err != nil {
		return domain.FeatureFlag{}, mapNotFound(err)
	}
	f.Enabled = enabled != 0
	return f, nil
}

func (r *featureFlagsRepo) ListFlags(ctx context.Context) ([]domain.FeatureFlag, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT key, enabled, description, updated_at
		FROM feature_flags ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []domain.FeatureFlag
	for rows.Next() {
		var (
			f       domain.FeatureFlag
			enabled int
		)
		if err := rows.Scan(&f.Key, &enabled, &f.Description, &f.UpdatedAt); err != nil {
			return nil, err
		}
		f.Enabled = enabled != 0
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

func (r *featureFlagsRepo) SetFlag(ctx context.Context, f domain.FeatureFlag) error {
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = time.Now().UTC()
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO feature_flags (key, enabled, description, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			enabled = excluded.enabled,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		f.Key, boolToInt(f.Enabled), f.Description, f.UpdatedAt,
	)
	return err
}
