package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/domain"
	"github.com/pingdesk/pingdesk/internal/console/store"
	"github.com/pingdesk/pingdesk/pkg/idx"
)

var (
	ErrFlowNotFound      = errors.New("flow not found")
	ErrUnknownDeviceType = errors.New("unknown device type")
	ErrDeviceTypeGated   = errors.New("device type is disabled")
)

// FlowService owns flow session lifecycle and wizard navigation. All state
// lives in the store so flows survive restarts.
type FlowService struct {
	Store   store.Store
	Tokens  *WorkerTokenService
	Flags   *FeatureFlagService
	FlowTTL time.Duration
}

// CreateFlowParams is the Configure-step submission.
type CreateFlowParams struct {
	FlowType      domain.FlowType
	DeviceType    domain.DeviceType
	EnvironmentID string
	Username      string
	UserToken     string
	PolicyID      string
	Fields        map[string]string
}

// CreateFlow validates a Configure submission and opens a new flow session
// at step 0.
func (s *FlowService) CreateFlow(ctx context.Context, p CreateFlowParams) (domain.FlowSession, error) {
	cfg, ok := GetDeviceConfig(p.DeviceType)
	if !ok {
		return domain.FlowSession{}, ErrUnknownDeviceType
	}

	enabled, err := s.Flags.DeviceTypeEnabled(ctx, p.DeviceType)
	if err != nil {
		return domain.FlowSession{}, fmt.Errorf("failed to check device type flag: %w", err)
	}
	if !enabled {
		return domain.FlowSession{}, fmt.Errorf("%w: %s", ErrDeviceTypeGated, p.DeviceType)
	}

	res, err := ResolveFlowType(p.FlowType)
	if err != nil {
		return domain.FlowSession{}, err
	}

	if v := ValidateAllFields(cfg, p.Fields); !v.Valid {
		return domain.FlowSession{}, &ValidationError{Fields: v.Errors, Warnings: v.Warnings}
	}

	now := time.Now().UTC()
	flow := domain.FlowSession{
		ID:       idx.New().String(),
		FlowType: p.FlowType,
		Credentials: domain.MFACredentials{
			EnvironmentID:                p.EnvironmentID,
			Username:                     p.Username,
			DeviceType:                   p.DeviceType,
			TokenType:                    res.TokenType,
			UserToken:                    p.UserToken,
			DeviceAuthenticationPolicyID: p.PolicyID,
			PhoneNumber:                  p.Fields["phoneNumber"],
			CountryCode:                  p.Fields["countryCode"],
			Email:                        p.Fields["email"],
			DeviceName:                   p.Fields["deviceName"],
		},
		Navigation: domain.StepNavigationState{CurrentStep: domain.StepConfigure},
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(s.FlowTTL),
	}

	if err := s.Store.Flows().CreateFlow(ctx, flow); err != nil {
		return domain.FlowSession{}, fmt.Errorf("failed to create flow: %w", err)
	}
	return flow, nil
}

// GetFlow returns a flow session by id.
func (s *FlowService) GetFlow(ctx context.Context, id string) (domain.FlowSession, error) {
	flow, err := s.Store.Flows().GetFlow(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.FlowSession{}, ErrFlowNotFound
	}
	if err != nil {
		return domain.FlowSession{}, fmt.Errorf("failed to get flow: %w", err)
	}
	return flow, nil
}

// DeleteFlow removes a flow session and its pending registration.
func (s *FlowService) DeleteFlow(ctx context.Context, id string) error {
	if err := s.Store.Flows().DeleteFlow(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flow: %w", err)
	}
	return nil
}

// Next advances the flow one step after the current step's guard passes.
func (s *FlowService) Next(ctx context.Context, id string) (domain.FlowSession, error) {
	return s.updateNavigation(ctx, id, func(flow *domain.FlowSession) error {
		if err := CanProceed(flow.Navigation.CurrentStep, s.guardInput(flow)); err != nil {
			return err
		}
		GoToNext(&flow.Navigation)
		return nil
	})
}

// Previous steps the flow back one step.
func (s *FlowService) Previous(ctx context.Context, id string) (domain.FlowSession, error) {
	return s.updateNavigation(ctx, id, func(flow *domain.FlowSession) error {
		GoToPrevious(&flow.Navigation)
		return nil
	})
}

// GoToStep jumps the flow directly to a step.
func (s *FlowService) GoToStep(ctx context.Context, id string, step domain.Step) (domain.FlowSession, error) {
	return s.updateNavigation(ctx, id, func(flow *domain.FlowSession) error {
		return GoToStep(&flow.Navigation, step)
	})
}

// CompleteStep marks the flow's current step as satisfied.
func (s *FlowService) CompleteStep(ctx context.Context, id string) (domain.FlowSession, error) {
	return s.updateNavigation(ctx, id, func(flow *domain.FlowSession) error {
		return MarkStepComplete(&flow.Navigation, s.guardInput(flow))
	})
}

// Steps returns the wizard metadata for a flow's device type.
func (s *FlowService) Steps(ctx context.Context, id string) ([]StepMeta, error) {
	flow, err := s.GetFlow(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, ok := GetDeviceConfig(flow.Credentials.DeviceType)
	if !ok {
		return nil, ErrUnknownDeviceType
	}
	return StepsFor(cfg, flow.Navigation), nil
}

func (s *FlowService) guardInput(flow *domain.FlowSession) GuardInput {
	return GuardInput{
		EnvironmentID:    flow.Credentials.EnvironmentID,
		Username:         flow.Credentials.Username,
		TokenType:        flow.Credentials.TokenType,
		WorkerTokenValid: s.Tokens.Valid(),
		UserToken:        flow.Credentials.UserToken,
	}
}

func (s *FlowService) updateNavigation(ctx context.Context, id string, mutate func(*domain.FlowSession) error) (domain.FlowSession, error) {
	flow, err := s.GetFlow(ctx, id)
	if err != nil {
		return domain.FlowSession{}, err
	}

	if err := mutate(&flow); err != nil {
		return domain.FlowSession{}, err
	}

	flow.UpdatedAt = time.Now().UTC()
	if err := s.Store.Flows().UpdateFlow(ctx, flow); err != nil {
		return domain.FlowSession{}, fmt.Errorf("failed to update flow: %w", err)
	}
	return flow, nil
}

// ValidationError carries field-scoped messages from a rejected submission.
type ValidationError struct {
	Fields   map[string]string
	Warnings map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}
