package store

import (
	"context"
	"errors"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the console's single persistence port. The source system wrote
// flow state to three places on a best-effort basis; here one interface with
// one driver chosen at startup replaces that. Concrete drivers (sqlite)
// implement this and expose sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Flows() Flows
	PendingRegistrations() PendingRegistrations
	Devices() Devices
	FeatureFlags() FeatureFlags
	DebugLogs() DebugLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back; otherwise it
	// is committed. This is the recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Flows interface {
	// CreateFlow inserts a new flow session (id is provided by app via ULID).
	CreateFlow(ctx context.Context, f domain.FlowSession) error

	// GetFlow returns a flow session by id.
	GetFlow(ctx context.Context, id string) (domain.FlowSession, error)

	// UpdateFlow persists the full mutable state of a flow session and
	// bumps updated_at.
	UpdateFlow(ctx context.Context, f domain.FlowSession) error

	// DeleteFlow removes a flow session (cascades to pending registrations).
	DeleteFlow(ctx context.Context, id string) error

	// DeleteExpiredFlows is housekeeping.
	DeleteExpiredFlows(ctx context.Context) error
}

type PendingRegistrations interface {
	// CreatePendingRegistration parks a user-flow submission until a user
	// token arrives. One pending registration per flow.
	CreatePendingRegistration(ctx context.Context, p domain.PendingRegistration) error

	// GetPendingRegistrationByFlow returns the parked submission for a flow.
	GetPendingRegistrationByFlow(ctx context.Context, flowID string) (domain.PendingRegistration, error)

	// DeletePendingRegistration removes a parked submission after replay.
	DeletePendingRegistration(ctx context.Context, id string) error

	// DeleteExpiredPendingRegistrations is housekeeping.
	DeleteExpiredPendingRegistrations(ctx context.Context) error
}

type Devices interface {
	// UpsertDevice inserts or refreshes a device mirror row.
	UpsertDevice(ctx context.Context, d domain.Device) error

	// ListUserDevices returns the mirrored devices for a user, newest first.
	ListUserDevices(ctx context.Context, environmentID, username string) ([]domain.Device, error)

	// DeleteUserDevices clears the mirror for a user before a fresh sync.
	DeleteUserDevices(ctx context.Context, environmentID, username string) error
}

type FeatureFlags interface {
	// GetFlag returns a flag by key.
	GetFlag(ctx context.Context, key string) (domain.FeatureFlag, error)

	// ListFlags returns all flags ordered by key.
	ListFlags(ctx context.Context) ([]domain.FeatureFlag, error)

	// SetFlag inserts or updates a flag.
	SetFlag(ctx context.Context, f domain.FeatureFlag) error
}

type DebugLogs interface {
	// AppendLog records an orchestration event.
	AppendLog(ctx context.Context, e domain.DebugLogEntry) error

	// ListRecentLogs returns the newest entries, most recent first.
	ListRecentLogs(ctx context.Context, limit int) ([]domain.DebugLogEntry, error)

	// ListFlowLogs returns the newest entries for one flow.
	ListFlowLogs(ctx context.Context, flowID string, limit int) ([]domain.DebugLogEntry, error)

	// DeleteLogsBefore prunes entries older than cutoff.
	DeleteLogsBefore(ctx context.Context, cutoff time.Time) error
}
