package service

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pingdesk/pingdesk/pkg/pingone"
)

const policyCacheKey = "policies"

// policyClient is the slice of the gateway client the policy service needs.
type policyClient interface {
	ListPolicies(ctx context.Context, workerToken, environmentID string) ([]pingone.DeviceAuthenticationPolicy, error)
}

// PolicyService serves device authentication policies through a TTL cache.
// Policies change rarely and every Configure submission wants them.
type PolicyService struct {
	Client        policyClient
	Tokens        *WorkerTokenService
	EnvironmentID string

	cache *cache.Cache
}

// NewPolicyService creates the policy service with the given cache TTL.
// If ttl is 0 or negative, defaults to 5 minutes.
func NewPolicyService(client policyClient, tokens *WorkerTokenService, environmentID string, ttl time.Duration) *PolicyService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PolicyService{
		Client:        client,
		Tokens:        tokens,
		EnvironmentID: environmentID,
		cache:         cache.New(ttl, 2*ttl),
	}
}

// ListPolicies returns the environment's policies, from cache when fresh.
func (s *PolicyService) ListPolicies(ctx context.Context) ([]pingone.DeviceAuthenticationPolicy, error) {
	if cached, ok := s.cache.Get(policyCacheKey); ok {
		return cached.([]pingone.DeviceAuthenticationPolicy), nil
	}

	if !s.Tokens.Valid() {
		return nil, ErrWorkerTokenInvalid
	}

	policies, err := s.Client.ListPolicies(ctx, s.Tokens.Token(), s.EnvironmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	s.cache.SetDefault(policyCacheKey, policies)
	return policies, nil
}

// Invalidate drops the cached policy list.
func (s *PolicyService) Invalidate() {
	s.cache.Delete(policyCacheKey)
}
