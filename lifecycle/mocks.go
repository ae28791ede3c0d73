package lifecycle

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ec2ctl/awsd/models"
)

// MockInstanceClient is a mock implementation of InstanceClient
type MockInstanceClient struct {
	mock.Mock
}

// ListInstances mocks the ListInstances method
func (m *MockInstanceClient) ListInstances(ctx context.Context) ([]models.Instance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Instance), args.Error(1)
}

// StartInstance mocks the StartInstance method
func (m *MockInstanceClient) StartInstance(ctx context.Context, instanceID string, dryRun bool) error {
	return m.Called(ctx, instanceID, dryRun).Error(0)
}

// StopInstance mocks the StopInstance method
func (m *MockInstanceClient) StopInstance(ctx context.Context, instanceID string, dryRun bool) error {
	return m.Called(ctx, instanceID, dryRun).Error(0)
}

// RebootInstance mocks the RebootInstance method
func (m *MockInstanceClient) RebootInstance(ctx context.Context, instanceID string, dryRun bool) error {
	return m.Called(ctx, instanceID, dryRun).Error(0)
}

// TerminateInstance mocks the TerminateInstance method
func (m *MockInstanceClient) TerminateInstance(ctx context.Context, instanceID string, dryRun bool) error {
	return m.Called(ctx, instanceID, dryRun).Error(0)
}

// WaitUntil mocks the WaitUntil method
func (m *MockInstanceClient) WaitUntil(ctx context.Context, state models.State, instanceIDs []string) error {
	return m.Called(ctx, state, instanceIDs).Error(0)
}
