package sqlite

import (
	"context"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
)

type flowsRepo struct {
	q querier
}

const flowColumns = `id, flow_type, environment_id, username, device_type, token_type,
	user_token, policy_id, phone_number, country_code, email, device_name,
	device_id, device_status, device_auth_id, totp_secret, key_uri, show_qr,
	pairing_key, credential_id, public_key, creation_options,
	current_step, completed_steps, created_at, updated_at, expires_at`

func (r *flowsRepo) CreateFlow(ctx context.Context, f domain.FlowSession) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO flows (`+flowColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, string(f.FlowType),
		f.Credentials.EnvironmentID, f.Credentials.Username,
		string(f.Credentials.DeviceType), string(f.Credentials.TokenType),
		f.Credentials.UserToken, f.Credentials.DeviceAuthenticationPolicyID,
		f.Credentials.PhoneNumber, f.Credentials.CountryCode,
		f.Credentials.Email, f.Credentials.DeviceName,
		f.State.DeviceID, string(f.State.DeviceStatus), f.State.DeviceAuthID,
		f.State.TOTPSecret, f.State.KeyURI, boolToInt(f.State.ShowQR),
		f.State.PairingKey, f.State.CredentialID, f.State.PublicKey,
		f.State.CreationOptions,
		int(f.Navigation.CurrentStep), joinSteps(f.Navigation.CompletedSteps),
		f.CreatedAt, f.UpdatedAt, f.ExpiresAt,
	)
	return err
}

func (r *flowsRepo) GetFlow(ctx context.Context, id string) (domain.FlowSession, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+flowColumns+` FROM flows WHERE id = ?`, id)
	return scanFlow(row)
}

func (r *flowsRepo) UpdateFlow(ctx context.Context, f domain.FlowSession) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE flows SET
			flow_type = ?, environment_id = ?, username = ?, device_type = ?,
			token_type = ?, user_token = ?, policy_id = ?, phone_number = ?,
			country_code = ?, email = ?, device_name = ?, device_id = ?,
			device_status = ?, device_auth_id = ?, totp_secret = ?, key_uri = ?,
			show_qr = ?, pairing_key = ?, credential_id = ?, public_key = ?,
			creation_options = ?, current_step = ?, completed_steps = ?,
			updated_at = ?
		WHERE id = ?`,
		string(f.FlowType),
		f.Credentials.EnvironmentID, f.Credentials.Username,
		string(f.Credentials.DeviceType), string(f.Credentials.TokenType),
		f.Credentials.UserToken, f.Credentials.DeviceAuthenticationPolicyID,
		f.Credentials.PhoneNumber, f.Credentials.CountryCode,
		f.Credentials.Email, f.Credentials.DeviceName,
		f.State.DeviceID, string(f.State.DeviceStatus), f.State.DeviceAuthID,
		f.State.TOTPSecret, f.State.KeyURI, boolToInt(f.State.ShowQR),
		f.State.PairingKey, f.State.CredentialID, f.State.PublicKey,
		f.State.CreationOptions,
		int(f.Navigation.CurrentStep), joinSteps(f.Navigation.CompletedSteps),
		time.Now().UTC(),
		f.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *flowsRepo) DeleteFlow(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM flows WHERE id = ?`, id)
	return err
}

func (r *flowsRepo) DeleteExpiredFlows(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM flows WHERE expires_at < ?`, time.Now().UTC())
	return err
}

// scanner is the common subset of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFlow(row scanner) (domain.FlowSession, error) {
	var (
		f              domain.FlowSession
		flowType       string
		deviceType     string
		tokenType      string
		deviceStatus   string
		showQR         int
		currentStep    int
		completedSteps string
	)

	err := row.Scan(
		&f.ID, &flowType,
		&f.Credentials.EnvironmentID, &f.Credentials.Username,
		&deviceType, &tokenType,
		&f.Credentials.UserToken, &f.Credentials.DeviceAuthenticationPolicyID,
		&f.Credentials.PhoneNumber, &f.Credentials.CountryCode,
		&f.Credentials.Email, &f.Credentials.DeviceName,
		&f.State.DeviceID, &deviceStatus, &f.State.DeviceAuthID,
		&f.State.TOTPSecret, &f.State.KeyURI, &showQR,
		&f.State.PairingKey, &f.State.CredentialID, &f.State.PublicKey,
		&f.State.CreationOptions,
		&currentStep, &completedSteps,
		&f.CreatedAt, &f.UpdatedAt, &f.ExpiresAt,
	)
	if err != nil {
		return domain.FlowSession{}, mapNotFound(err)
	}

	f.FlowType = domain.FlowType(flowType)
	f.Credentials.DeviceType = domain.DeviceType(deviceType)
	f.Credentials.TokenType = domain.TokenType(tokenType)
	f.State.DeviceStatus = domain.DeviceStatus(deviceStatus)
	f.State.ShowQR = showQR != 0
	f.Navigation.CurrentStep = domain.Step(currentStep)
	f.Navigation.CompletedSteps = splitSteps(completedSteps)

	return f, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
