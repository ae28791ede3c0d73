package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ec2ctl/awsd/models"
	"ec2ctl/errors"
	"ec2ctl/lifecycle"
)

func init() {
	color.NoColor = true
}

type testCase struct {
	name     string
	args     []string
	setup    func(client *lifecycle.MockInstanceClient)
	exitCode int
	stdout   []string
	stderr   string
	usage    bool

	// cobra rejects the arguments before any command reaches the service
	noService bool
}

func fleet() []models.Instance {
	return []models.Instance{
		{InstanceID: "i-run", State: models.StateRunning, PrivateIP: "10.0.0.1"},
		{InstanceID: "i-123", State: models.StateStopped, StateReason: "Client.UserInitiatedShutdown"},
		{InstanceID: "i-gone", State: models.StateTerminated},
	}
}

func mockFactory(client *lifecycle.MockInstanceClient) serviceFactory {
	return func(ctx context.Context, out io.Writer) (*lifecycle.Service, error) {
		return lifecycle.NewService(client, out, nil), nil
	}
}

func TestRun(t *testing.T) {
	testCases := []testCase{
		{
			name:     "stop on stopped instance",
			args:     []string{"stop", "i-123"},
			exitCode: 0,
			stdout: []string{
				"Attempting to stop instance i-123, this might take a few minutes...",
				"The instance is already stopped.",
			},
		},
		{
			name:     "start unknown instance",
			args:     []string{"start", "i-missing"},
			exitCode: 0,
			stdout:   []string{"No instance found with id: i-missing"},
		},
		{
			name: "start stopped instance",
			args: []string{"start", "i-123"},
			setup: func(client *lifecycle.MockInstanceClient) {
				client.On("StartInstance", mock.Anything, "i-123", false).Return(nil).Once()
				client.On("WaitUntil", mock.Anything, models.StateRunning, []string{"i-123"}).Return(nil).Once()
			},
			exitCode: 0,
			stdout: []string{
				"Attempting to start instance i-123, this might take a few minutes...",
				"Instance started successfully.",
			},
		},
		{
			name: "terminate dry run",
			args: []string{"terminate", "i-gone", "--dry-run"},
			setup: func(client *lifecycle.MockInstanceClient) {
				client.On("TerminateInstance", mock.Anything, "i-gone", true).
					Return(errors.New(errors.ErrDryRun, "Request would have succeeded, but DryRun flag is set.", nil, nil)).Once()
			},
			exitCode: 0,
			stdout: []string{
				"Attempting to terminate instance i-gone, this might take a few minutes...",
				"Checking permissions to perform this operation: Request would have succeeded, but DryRun flag is set.",
			},
		},
		{
			name:     "list running only",
			args:     []string{"list", "-r"},
			exitCode: 0,
			stdout: []string{
				"Instances: 1",
				strings.Repeat("~", 50),
				"#1",
				"Instance ID:               i-run",
				"Name:                      ",
				"State:                     RUNNING",
				"Private IP address:        10.0.0.1",
			},
		},
		{
			name:     "describe unknown instance",
			args:     []string{"describe", "i-missing"},
			exitCode: 0,
			stdout:   []string{"No instance found with id: i-missing"},
		},
		{
			name:      "version",
			noService: true,
			args:      []string{"--version"},
			exitCode:  0,
			stdout:    []string{"ec2ctl 1.1.4"},
		},
		{
			name:      "running and stopped are exclusive",
			noService: true,
			args:      []string{"list", "-r", "-s"},
			exitCode:  1,
			stderr:    "Error:",
			usage:     true,
		},
		{
			name:      "describe needs an id",
			noService: true,
			args:      []string{"describe"},
			exitCode:  1,
			stderr:    "accepts 1 arg(s), received 0",
			usage:     true,
		},
		{
			name:      "unknown verb",
			noService: true,
			args:      []string{"hibernate", "i-123"},
			exitCode:  1,
			stderr:    "unknown command",
		},
		{
			name:      "no completion command",
			args:      []string{"completion", "bash"},
			noService: true,
			exitCode:  1,
			stderr:    "unknown command \"completion\"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := new(lifecycle.MockInstanceClient)
			if !tc.noService {
				client.On("ListInstances", mock.Anything).Return(fleet(), nil)
			}
			if tc.setup != nil {
				tc.setup(client)
			}

			var stdout, stderr bytes.Buffer
			code := run(tc.args, &stdout, &stderr, mockFactory(client))

			assert.Equal(t, tc.exitCode, code, "stderr: %s", stderr.String())
			if tc.stdout != nil {
				assert.Equal(t, strings.Join(tc.stdout, "\n")+"\n", stdout.String())
			}
			if tc.stderr != "" {
				assert.Contains(t, stderr.String(), tc.stderr)
			}
			if tc.usage {
				assert.Contains(t, stdout.String(), "Usage:")
			}
			client.AssertExpectations(t)
		})
	}
}

func TestRun_NoMutationWithoutInstance(t *testing.T) {
	for _, action := range lifecycle.Actions {
		t.Run(action.String(), func(t *testing.T) {
			client := new(lifecycle.MockInstanceClient)
			client.On("ListInstances", mock.Anything).Return([]models.Instance{}, nil)

			var stdout, stderr bytes.Buffer
			code := run([]string{action.String(), "i-404"}, &stdout, &stderr, mockFactory(client))

			assert.Equal(t, 0, code)
			assert.Equal(t, "No instance found with id: i-404\n", stdout.String())
			for _, method := range []string{"StartInstance", "StopInstance", "RebootInstance", "TerminateInstance", "WaitUntil"} {
				client.AssertNotCalled(t, method, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestRun_ServiceSetupFailure(t *testing.T) {
	factory := func(ctx context.Context, out io.Writer) (*lifecycle.Service, error) {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid WAIT_TIMEOUT_SECONDS", nil, nil)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"list"}, &stdout, &stderr, factory)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid WAIT_TIMEOUT_SECONDS")
	assert.NotContains(t, stdout.String(), "Usage:")
}

func TestRun_ListFailureIsReported(t *testing.T) {
	client := new(lifecycle.MockInstanceClient)
	client.On("ListInstances", mock.Anything).
		Return(nil, errors.New(errors.ErrUnauthorized, "You are not authorized to perform this operation.", nil, stderrors.New("403")))

	var stdout, stderr bytes.Buffer
	code := run([]string{"list", "--verbose"}, &stdout, &stderr, mockFactory(client))

	assert.Equal(t, 0, code)
	assert.Equal(t, "Error executing action: You are not authorized to perform this operation.\n", stdout.String())
}

func TestExecute_ErrorTypes(t *testing.T) {
	setupFailure := func(ctx context.Context, out io.Writer) (*lifecycle.Service, error) {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid AWS_REGION", nil, nil)
	}

	tests := []struct {
		name    string
		args    []string
		factory serviceFactory
		errType errors.ErrorType
	}{
		{name: "unknown verb", args: []string{"hibernate", "i-123"}, errType: errors.ErrUsage},
		{name: "missing instance id", args: []string{"stop"}, errType: errors.ErrUsage},
		{name: "too many arguments", args: []string{"stop", "i-123", "extra"}, errType: errors.ErrUsage},
		{name: "exclusive filters", args: []string{"list", "-r", "-s"}, errType: errors.ErrUsage},
		{name: "unknown flag", args: []string{"reboot", "i-123", "--force"}, errType: errors.ErrUsage},
		{name: "setup failure keeps its type", args: []string{"list"}, factory: setupFailure, errType: errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := tt.factory
			if factory == nil {
				factory = mockFactory(new(lifecycle.MockInstanceClient))
			}

			var stdout, stderr bytes.Buffer
			err := execute(context.Background(), tt.args, &stdout, &stderr, factory)

			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.errType), "got %v", err)
		})
	}
}
