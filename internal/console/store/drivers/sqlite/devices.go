package sqlite

import (
	"context"

	"github.com/pingdesk/pingdesk/internal/console/domain"
)

type devicesRepo struct {
	q querier
}

func (r *devicesRepo) UpsertDevice(ctx context.Context, d domain.Device) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO devices (id, environment_id, username, type, status, nickname, phone, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id, environment_id) DO UPDATE SET
			username = excluded.username,
			type = excluded.type,
			status = excluded.status,
			nickname = excluded.nickname,
			phone = excluded.phone,
			email = excluded.email,
			updated_at = excluded.updated_at`,
		d.ID, d.EnvironmentID, d.Username, string(d.Type), string(d.Status),
		d.Nickname, d.Phone, d.Email, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

func (r *devicesRepo) ListUserDevices(ctx context.Context, environmentID, username string) ([]domain.Device, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, environment_id, username, type, status, nickname, phone, email, created_at, updated_at
		FROM devices
		WHERE environment_id = ? AND username = ?
		ORDER BY created_at DESC`,
		environmentID, username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		var (
			d          domain.Device
			deviceType string
			status     string
		)
		if err := rows.Scan(&d.ID, &d.EnvironmentID, &d.Username, &deviceType, &status,
			&d.Nickname, &d.Phone, &d.Email, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Type = domain.DeviceType(deviceType)
		d.Status = domain.DeviceStatus(status)
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (r *devicesRepo) DeleteUserDevices(ctx context.Context, environmentID, username string) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM devices WHERE environment_id = ? AND username = ?`,
		environmentID, username,
	)
	return err
}
