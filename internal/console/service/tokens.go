package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pingdesk/pingdesk/pkg/pingone"
)

// tokenExpirySkew treats a token as invalid slightly before its real expiry
// so in-flight requests never present a token that dies mid-call.
const tokenExpirySkew = 30 * time.Second

// TokenStatus is a point-in-time view of the worker token.
type TokenStatus struct {
	Valid     bool      `json:"valid"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	LastError string    `json:"lastError,omitempty"`
}

// tokenClient is the slice of the gateway client the token service needs.
type tokenClient interface {
	ClientCredentialsToken(ctx context.Context) (pingone.TokenResponse, error)
}

// WorkerTokenService owns the worker access token: it acquires it with the
// client credentials grant, refreshes it on a fixed interval in the
// background, and answers synchronous validity checks. Constructed and
// injected explicitly so tests can run isolated instances.
type WorkerTokenService struct {
	Client   tokenClient
	Logger   *slog.Logger
	Interval time.Duration

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	lastError string
	subs      []chan TokenStatus

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewWorkerTokenService creates the token service. If interval is 0 or
// negative, defaults to 5 minutes.
func NewWorkerTokenService(client tokenClient, logger *slog.Logger, interval time.Duration) *WorkerTokenService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &WorkerTokenService{
		Client:   client,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh worker. Non-blocking; call Stop to
// shut down.
func (s *WorkerTokenService) Start() {
	go s.run()
	s.Logger.Info("worker token service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
func (s *WorkerTokenService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("worker token service stopped")
}

func (s *WorkerTokenService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Acquire immediately on startup
	s.Refresh(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Refresh(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Refresh acquires a fresh worker token. Safe to call concurrently with the
// background worker; the newest result wins.
func (s *WorkerTokenService) Refresh(ctx context.Context) {
	resp, err := s.Client.ClientCredentialsToken(ctx)
	if err != nil {
		s.Logger.Error("worker token refresh failed", "error", err)
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		s.notify()
		return
	}

	expiresAt := tokenExpiry(resp)

	s.mu.Lock()
	s.token = resp.AccessToken
	s.expiresAt = expiresAt
	s.lastError = ""
	s.mu.Unlock()

	s.Logger.Info("worker token refreshed", "expires_at", expiresAt)
	s.notify()
}

// Token returns the current worker token, or "" when none is held.
func (s *WorkerTokenService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Valid reports whether the held token is usable right now. This is the
// synchronous recheck the orchestrator performs immediately before each
// gateway call; the cached status a subscriber saw may be stale.
func (s *WorkerTokenService) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && time.Now().Before(s.expiresAt.Add(-tokenExpirySkew))
}

// Status returns the current token status snapshot.
func (s *WorkerTokenService) Status() TokenStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TokenStatus{
		Valid:     s.token != "" && time.Now().Before(s.expiresAt.Add(-tokenExpirySkew)),
		ExpiresAt: s.expiresAt,
		LastError: s.lastError,
	}
}

// Subscribe returns a channel that receives a status snapshot after every
// refresh attempt. The channel is buffered; slow consumers drop updates
// rather than block the refresher.
func (s *WorkerTokenService) Subscribe() <-chan TokenStatus {
	ch := make(chan TokenStatus, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *WorkerTokenService) notify() {
	status := s.Status()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- status:
		default:
		}
	}
}

// tokenExpiry derives the expiry of an access token: from the JWT exp claim
// when the token parses as a JWT, otherwise from expires_in. The console is
// not the issuer so the signature is not verified; expiry is the only claim
// read.
func tokenExpiry(resp pingone.TokenResponse) time.Time {
	if exp, ok := jwtExpiry(resp.AccessToken); ok {
		return exp
	}
	if resp.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return time.Now().Add(time.Hour)
}

func jwtExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// UserTokenValid reports whether a user-supplied access token is usable:
// non-empty and, when it parses as a JWT, not expired.
func UserTokenValid(token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	if exp, ok := jwtExpiry(token); ok {
		return time.Now().Before(exp)
	}
	return true
}
