package lifecycle

import (
	"context"

	"ec2ctl/awsd/models"
)

// InstanceClient defines the cloud operations the lifecycle service needs
type InstanceClient interface {
	ListInstances(ctx context.Context) ([]models.Instance, error)
	StartInstance(ctx context.Context, instanceID string, dryRun bool) error
	StopInstance(ctx context.Context, instanceID string, dryRun bool) error
	RebootInstance(ctx context.Context, instanceID string, dryRun bool) error
	TerminateInstance(ctx context.Context, instanceID string, dryRun bool) error
	WaitUntil(ctx context.Context, state models.State, instanceIDs []string) error
}
