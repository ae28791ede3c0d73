package lifecycle

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"ec2ctl/awsd/models"
	"ec2ctl/errors"
)

const (
	packageName = "lifecycle"

	dryRunAccepted = "Dry run completed, no changes were made."
)

// Result is the outcome of a single lifecycle command
type Result struct {
	Action     Action
	InstanceID string
	Outcome    Outcome
	Message    string
	Err        error
}

// OK reports whether the command ended the way the operator wanted it to
func (r Result) OK() bool {
	switch r.Outcome {
	case OutcomeCompleted, OutcomeUnchanged, OutcomeDryRun:
		return true
	}
	return false
}

// Service locates instances and drives their lifecycle transitions
type Service struct {
	client InstanceClient
	out    io.Writer
	logger *zap.Logger
}

// NewService creates a Service. Progress lines are written to out.
func NewService(client InstanceClient, out io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		out:    out,
		logger: logger.With(zap.String("package", packageName)),
	}
}

// List fetches every instance and keeps the ones matching filter
func (s *Service) List(ctx context.Context, filter Filter) ([]models.Instance, error) {
	instances, err := s.client.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	return FilterInstances(instances, filter), nil
}

// Describe fetches the instance with the given ID
func (s *Service) Describe(ctx context.Context, instanceID string) (*models.Instance, error) {
	instances, err := s.client.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	return Locate(instances, instanceID)
}

// Execute applies action to the instance. Unless dryRun is set, the current state
// is checked first and the call is skipped when the guard forbids or makes it moot.
// Start, stop and terminate block until the target state is confirmed.
func (s *Service) Execute(ctx context.Context, action Action, instanceID string, dryRun bool) Result {
	logger := s.logger.With(
		zap.String("function", "Execute"),
		zap.Stringer("action", action),
		zap.String("instance_id", instanceID),
		zap.Bool("dry_run", dryRun),
	)

	instances, err := s.client.ListInstances(ctx)
	if err != nil {
		return s.failure(logger, action, instanceID, err)
	}
	instance, err := Locate(instances, instanceID)
	if err != nil {
		logger.Warn("Instance not found", zap.String("operation", "locate"))
		return Result{
			Action:     action,
			InstanceID: instanceID,
			Outcome:    OutcomeNotFound,
			Message:    errors.MessageOf(err),
			Err:        err,
		}
	}

	fmt.Fprintf(s.out, "Attempting to %s instance %s, this might take a few minutes...\n", action, instanceID)

	if !dryRun {
		if verdict, blocked := Guard(action, instance.State); blocked {
			logger.Info("Request short-circuited by state guard",
				zap.String("operation", "guard"),
				zap.String("state", string(instance.State)),
				zap.String("outcome", string(verdict.Outcome)),
			)
			result := Result{
				Action:     action,
				InstanceID: instanceID,
				Outcome:    verdict.Outcome,
				Message:    verdict.Message,
			}
			if verdict.Outcome == OutcomeRejected {
				result.Err = errors.New(errors.ErrInvalidState, verdict.Message,
					map[string]interface{}{
						"instance_id": instanceID,
						"state":       string(instance.State),
						"action":      action.String(),
					}, nil)
			}
			return result
		}
	}

	if err := s.request(ctx, action, instanceID, dryRun); err != nil {
		return s.failure(logger, action, instanceID, err)
	}

	if dryRun {
		return Result{Action: action, InstanceID: instanceID, Outcome: OutcomeDryRun, Message: dryRunAccepted}
	}

	if target, waits := action.TargetState(); waits {
		logger.Debug("Waiting for target state",
			zap.String("operation", "wait_until"),
			zap.String("target", string(target)),
		)
		if err := s.client.WaitUntil(ctx, target, []string{instanceID}); err != nil {
			return s.failure(logger, action, instanceID, err)
		}
	}

	logger.Info("Action completed", zap.String("operation", "execute"))
	return Result{
		Action:     action,
		InstanceID: instanceID,
		Outcome:    OutcomeCompleted,
		Message:    action.successMessage(),
	}
}

func (s *Service) request(ctx context.Context, action Action, instanceID string, dryRun bool) error {
	switch action {
	case ActionStart:
		return s.client.StartInstance(ctx, instanceID, dryRun)
	case ActionStop:
		return s.client.StopInstance(ctx, instanceID, dryRun)
	case ActionReboot:
		return s.client.RebootInstance(ctx, instanceID, dryRun)
	case ActionTerminate:
		return s.client.TerminateInstance(ctx, instanceID, dryRun)
	}
	return fmt.Errorf("unsupported action %s", action)
}

func (s *Service) failure(logger *zap.Logger, action Action, instanceID string, err error) Result {
	outcome, message := Explain(err)
	log := logger.Warn
	if outcome == OutcomeDryRun {
		log = logger.Info
	}
	log("Action did not complete",
		zap.String("operation", "execute"),
		zap.String("outcome", string(outcome)),
		zap.Error(err),
	)
	return Result{
		Action:     action,
		InstanceID: instanceID,
		Outcome:    outcome,
		Message:    message,
		Err:        err,
	}
}

// Explain renders an error as the outcome and line shown to the operator
func Explain(err error) (Outcome, string) {
	message := errors.MessageOf(err)
	switch errors.TypeOf(err) {
	case errors.ErrDryRun:
		return OutcomeDryRun, "Checking permissions to perform this operation: " + message
	case errors.ErrUnauthorized:
		return OutcomeUnauthorized, "Error executing action: " + message
	case errors.ErrInstanceNotFound:
		return OutcomeNotFound, message
	case errors.ErrInvalidState:
		return OutcomeRejected, message
	}
	return OutcomeFailed, "Error requesting action: " + message
}
