package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
)

type pendingRegistrationsRepo struct {
	q querier
}

func (r *pendingRegistrationsRepo) CreatePendingRegistration(ctx context.Context, p domain.PendingRegistration) error {
	fields, err := json.Marshal(p.Fields)
	if err != nil {
		return err
	}

	// Replace any earlier parked submission for the same flow; only the
	// latest one should replay.
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO pending_registrations (id, flow_id, device_type, flow_type, fields, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (flow_id) DO UPDATE SET
			id = excluded.id,
			device_type = excluded.device_type,
			flow_type = excluded.flow_type,
			fields = excluded.fields,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`,
		p.ID, p.FlowID, string(p.DeviceType), string(p.FlowType),
		string(fields), p.CreatedAt, p.ExpiresAt,
	)
	return err
}

func (r *pendingRegistrationsRepo) GetPendingRegistrationByFlow(ctx context.Context, flowID string) (domain.PendingRegistration, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, flow_id, device_type, flow_type, fields, created_at, expires_at
		FROM pending_registrations
		WHERE flow_id = ? AND expires_at > ?`,
		flowID, time.Now().UTC(),
	)

	var (
		p          domain.PendingRegistration
		deviceType string
		flowType   string
		fields     string
	)
	if err := row.Scan(&p.ID, &p.FlowID, &deviceType, &flowType, &fields, &p.CreatedAt, &p.ExpiresAt); err != nil {
		return domain.PendingRegistration{}, mapNotFound(err)
	}

	p.DeviceType = domain.DeviceType(deviceType)
	p.FlowType = domain.FlowType(flowType)
	if err := json.Unmarshal([]byte(fields), &p.Fields); err != nil {
		return domain.PendingRegistration{}, err
	}

	return p, nil
}

func (r *pendingRegistrationsRepo) DeletePendingRegistration(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM pending_registrations WHERE id = ?`, id)
	return err
}

func (r *pendingRegistrationsRepo) DeleteExpiredPendingRegistrations(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM pending_registrations WHERE expires_at < ?`, time.Now().UTC())
	return err
}
