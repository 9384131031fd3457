package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pingdesk/pingdesk/internal/console/domain"
)

var (
	ErrStepOutOfRange   = errors.New("step index out of range")
	ErrStepGuardFailed  = errors.New("step preconditions not met")
	ErrStepNotValidated = errors.New("step validation has not passed")
)

// StepMeta is the wizard metadata for one step: its label for the selected
// device type and whether the generic Next control is hidden. Next is hidden
// (not disabled) on Configure and User Login so the operator goes through
// the in-step action instead.
type StepMeta struct {
	Step       domain.Step
	Label      string
	NextHidden bool
	Completed  bool
}

// GuardInput carries the session facts the step entry guards inspect.
type GuardInput struct {
	EnvironmentID    string
	Username         string
	TokenType        domain.TokenType
	WorkerTokenValid bool
	UserToken        string
}

// NextHidden reports whether the generic Next control is hidden on a step.
func NextHidden(s domain.Step) bool {
	return s == domain.StepConfigure || s == domain.StepUserLogin
}

// CanProceed evaluates the entry guard for leaving a step. Only Configure
// and Device Selection carry blocking preconditions; every other step is
// passable once reached.
func CanProceed(s domain.Step, in GuardInput) error {
	switch s {
	case domain.StepConfigure:
		var missing []string
		if !in.WorkerTokenValid {
			missing = append(missing, "a valid worker token")
		}
		if strings.TrimSpace(in.EnvironmentID) == "" {
			missing = append(missing, "an environment ID")
		}
		if strings.TrimSpace(in.Username) == "" {
			missing = append(missing, "a username")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: configure requires %s", ErrStepGuardFailed, strings.Join(missing, ", "))
		}
	case domain.StepDeviceSelection:
		if in.TokenType == domain.TokenUser {
			if in.UserToken == "" {
				return fmt.Errorf("%w: user flow requires a user token", ErrStepGuardFailed)
			}
			return nil
		}
		if !in.WorkerTokenValid {
			return fmt.Errorf("%w: admin flow requires a valid worker token", ErrStepGuardFailed)
		}
	}
	return nil
}

// GoToNext advances one step, clamped at the terminal step.
func GoToNext(nav *domain.StepNavigationState) {
	if nav.CurrentStep < domain.StepMax {
		nav.CurrentStep++
	}
}

// GoToPrevious steps back one step, clamped at the first step.
func GoToPrevious(nav *domain.StepNavigationState) {
	if nav.CurrentStep > domain.StepMin {
		nav.CurrentStep--
	}
}

// GoToStep jumps directly to a step. Used by the registration orchestrator
// to skip steps after interpreting a gateway response.
func GoToStep(nav *domain.StepNavigationState, s domain.Step) error {
	if !s.InRange() {
		return ErrStepOutOfRange
	}
	nav.CurrentStep = s
	return nil
}

// MarkStepComplete records the current step as satisfied once its guard
// passes. It does not advance the step.
func MarkStepComplete(nav *domain.StepNavigationState, in GuardInput) error {
	if err := CanProceed(nav.CurrentStep, in); err != nil {
		return err
	}
	nav.MarkComplete(nav.CurrentStep)
	return nil
}

// StepsFor builds the full wizard metadata for a device type.
func StepsFor(cfg DeviceFlowConfig, nav domain.StepNavigationState) []StepMeta {
	steps := make([]StepMeta, 0, int(domain.StepMax)+1)
	for s := domain.StepMin; s <= domain.StepMax; s++ {
		steps = append(steps, StepMeta{
			Step:       s,
			Label:      cfg.StepLabel(s),
			NextHidden: NextHidden(s),
			Completed:  nav.Completed(s),
		})
	}
	return steps
}
