package http

import (
	"net/http"
	"strconv"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
)

// LogsHandler exposes the debug log viewer.
type LogsHandler struct {
	Logs *service.DebugLogService
}

// HandleList handles GET /v1/logs
//
//	@Summary		List debug log entries
//	@Description	Returns recorded orchestration events, newest first. Filter to one flow with flowId.
//	@Tags			Logs
//	@Security		BearerAuth
//	@Produce		json
//	@Param			flowId	query		string	false	"Filter to one flow"
//	@Param			limit	query		int		false	"Max entries (default 100, cap 1000)"
//	@Success		200		{array}		LogEntryResponse
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/logs [get].
func (h *LogsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "limit must be an integer")
			return
		}
		limit = n
	}

	entries, err := h.Logs.Recent(r.Context(), r.URL.Query().Get("flowId"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogEntryResponse{
			ID:        e.ID,
			FlowID:    e.FlowID,
			Level:     e.Level,
			Message:   e.Message,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
