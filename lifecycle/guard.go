package lifecycle

import "ec2ctl/awsd/models"

// Outcome classifies how a command ended
type Outcome string

const (
	OutcomeCompleted    Outcome = "completed" // transition confirmed, or reboot request sent
	OutcomeUnchanged    Outcome = "unchanged" // already in, or heading to, the requested state
	OutcomeRejected     Outcome = "rejected"  // current state does not allow the action
	OutcomeNotFound     Outcome = "not_found"
	OutcomeDryRun       Outcome = "dry_run"
	OutcomeUnauthorized Outcome = "unauthorized"
	OutcomeFailed       Outcome = "failed"
)

// Verdict is the guard's short-circuit answer for an action in a given state
type Verdict struct {
	Outcome Outcome
	Message string
}

// Guard reports whether action must not be sent for an instance in state.
// States not listed for an action fall through to the API call.
func Guard(action Action, state models.State) (Verdict, bool) {
	switch action {
	case ActionStart:
		switch state {
		case models.StatePending:
			return rejected("Error starting instance: the instance is pending. Try again later."), true
		case models.StateRunning:
			return unchanged("The instance is already running."), true
		case models.StateTerminated:
			return rejected("Error starting instance: the instance is terminated, so you cannot start it."), true
		}
	case ActionStop:
		switch state {
		case models.StateStopping:
			return unchanged("The instance is already stopping."), true
		case models.StateStopped:
			return unchanged("The instance is already stopped."), true
		case models.StateTerminated:
			return rejected("Error stopping instance: the instance is terminated, so you cannot stop it."), true
		}
	case ActionReboot:
		if state.IsTerminal() {
			return rejected("Error requesting reboot: the instance is already terminated."), true
		}
	case ActionTerminate:
		if state.IsTerminal() {
			return unchanged("The instance is already terminated."), true
		}
	}
	return Verdict{}, false
}

func rejected(message string) Verdict {
	return Verdict{Outcome: OutcomeRejected, Message: message}
}

func unchanged(message string) Verdict {
	return Verdict{Outcome: OutcomeUnchanged, Message: message}
}
