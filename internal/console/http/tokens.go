package http

import (
	"net/http"

	"github.com/pingdesk/pingdesk/internal/console/service"
	"github.com/pingdesk/pingdesk/pkg/httpx"
)

// TokensHandler exposes the worker token status.
type TokensHandler struct {
	Tokens *service.WorkerTokenService
}

// HandleStatus handles GET /v1/token/status
//
//	@Summary		Worker token status
//	@Description	Reports whether the background-refreshed worker token is currently valid and when it expires.
//	@Tags			Tokens
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	service.TokenStatus
//	@Router			/v1/token/status [get].
func (h *TokensHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Tokens.Status())
}
