package lifecycle

import (
	"fmt"

	"ec2ctl/awsd/models"
)

// Action is a requested lifecycle transition
type Action int

const (
	ActionStart Action = iota + 1
	ActionStop
	ActionReboot
	ActionTerminate
)

// Actions lists every action in CLI order
var Actions = []Action{ActionStart, ActionStop, ActionReboot, ActionTerminate}

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionReboot:
		return "reboot"
	case ActionTerminate:
		return "terminate"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// TargetState is the state WaitUntil blocks for after the request is accepted.
// Reboot has no distinct terminal state, so it reports false.
func (a Action) TargetState() (models.State, bool) {
	switch a {
	case ActionStart:
		return models.StateRunning, true
	case ActionStop:
		return models.StateStopped, true
	case ActionTerminate:
		return models.StateTerminated, true
	}
	return "", false
}

func (a Action) successMessage() string {
	switch a {
	case ActionStart:
		return "Instance started successfully."
	case ActionStop:
		return "Instance stopped successfully."
	case ActionReboot:
		return "Reboot request sent."
	case ActionTerminate:
		return "Instance terminated successfully."
	}
	return ""
}
