package domain

// Step is a position in the seven-step unified registration flow.
type Step int

const (
	StepConfigure Step = iota
	StepUserLogin
	StepDeviceSelection
	StepRegistration
	StepActivation
	StepSuccess
	StepDocs
)

const (
	StepMin = StepConfigure
	StepMax = StepDocs
)

// InRange reports whether s is a valid step index.
func (s Step) InRange() bool {
	return s >= StepMin && s <= StepMax
}

// StepNavigationState tracks the current position in the wizard and which
// steps have passed their validation predicate.
type StepNavigationState struct {
	CurrentStep    Step
	CompletedSteps []Step
}

// Completed reports whether step has been marked complete.
func (n StepNavigationState) Completed(step Step) bool {
	for _, s := range n.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// MarkComplete records step as complete. Idempotent.
func (n *StepNavigationState) MarkComplete(step Step) {
	if n.Completed(step) {
		return
	}
	n.CompletedSteps = append(n.CompletedSteps, step)
}
