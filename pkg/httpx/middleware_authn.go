package httpx

import (
	"net/http"
	"strings"

	"github.com/pingdesk/pingdesk/pkg/cryptox"
	"github.com/pingdesk/pingdesk/pkg/slogx"
)

// APIKeyMiddleware requires a Bearer operator key whose SHA-256 fingerprint
// matches one of the configured fingerprints. An empty fingerprint list
// disables authentication (local development).
func APIKeyMiddleware(fingerprints []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(fingerprints) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			log := slogx.FromContext(r.Context())

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer key")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			for _, fp := range fingerprints {
				if cryptox.VerifyToken(raw, fp) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn("api key rejected")
			writeBearerError(w, "invalid operator key")
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
