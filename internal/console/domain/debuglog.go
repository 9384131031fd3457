package domain

import "time"

// DebugLogEntry is one orchestration event shown in the console's debug log
// viewer. Detail carries request/response context as JSON.
type DebugLogEntry struct {
	ID        string
	FlowID    string
	Level     string // "info", "warn", "error"
	Message   string
	Detail    string
	CreatedAt time.Time
}
