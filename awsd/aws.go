package awsd

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"go.uber.org/zap"

	"ec2ctl/awsd/models"
	"ec2ctl/configuration"
	"ec2ctl/errors"
)

const (
	packageName = "awsd"
)

// EC2API is the subset of the EC2 service client used by the tool
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
	RebootInstances(ctx context.Context, params *ec2.RebootInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RebootInstancesOutput, error)
	TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
}

type AwsClient struct {
	client  EC2API
	maxWait time.Duration
	logger  *zap.Logger
}

// NewAWSClientWithAPI wraps an existing EC2API implementation
func NewAWSClientWithAPI(api EC2API, maxWait time.Duration) *AwsClient {
	return &AwsClient{
		client:  api,
		maxWait: maxWait,
		logger:  zap.L().With(zap.String("package", packageName)),
	}
}

// NewEC2ClientWithConfig builds the EC2 service client from a loaded aws.Config.
// A non-empty endpointURL overrides the resolved endpoint, e.g. for LocalStack.
func NewEC2ClientWithConfig(cfg aws.Config, endpointURL string, maxWait time.Duration) *AwsClient {
	client := ec2.NewFromConfig(cfg, func(o *ec2.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = aws.String(endpointURL)
		}
	})
	return NewAWSClientWithAPI(client, maxWait)
}

// NewAWSClient creates and returns a configured EC2 client
func NewAWSClient(ctx context.Context, conf *configuration.Config) (*AwsClient, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(conf.AWSRegion),
	}
	if conf.AWSProfile != "" {
		opts = append(opts, config.WithSharedConfigProfile(conf.AWSProfile))
	}
	if conf.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessSecret, conf.SessionToken)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New(errors.ErrAWSClient, "failed to load AWS configuration",
			map[string]interface{}{
				"region":  conf.AWSRegion,
				"profile": conf.AWSProfile,
			}, err)
	}

	return NewEC2ClientWithConfig(cfg, conf.EndpointURL, time.Duration(conf.WaitTimeout)*time.Second), nil
}

// ListInstances fetches every instance visible to the account in the configured region
func (c *AwsClient) ListInstances(ctx context.Context) ([]models.Instance, error) {
	logger := c.logger.With(zap.String("function", "ListInstances"))

	instances := make([]models.Instance, 0)
	paginator := ec2.NewDescribeInstancesPaginator(c.client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logger.Error("Failed to describe instances",
				zap.String("operation", "describe_instances"),
				zap.Error(err),
			)
			return nil, Classify(err)
		}
		for _, reservation := range page.Reservations {
			for _, i := range reservation.Instances {
				instances = append(instances, toInstance(i))
			}
		}
	}

	logger.Debug("Instances fetched",
		zap.String("operation", "describe_instances"),
		zap.Int("count", len(instances)),
	)
	return instances, nil
}

// StartInstance requests a start of the instance
func (c *AwsClient) StartInstance(ctx context.Context, instanceID string, dryRun bool) error {
	_, err := c.client.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
		DryRun:      aws.Bool(dryRun),
	})
	return c.result("start_instances", instanceID, dryRun, err)
}

// StopInstance requests a stop of the instance
func (c *AwsClient) StopInstance(ctx context.Context, instanceID string, dryRun bool) error {
	_, err := c.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
		DryRun:      aws.Bool(dryRun),
	})
	return c.result("stop_instances", instanceID, dryRun, err)
}

// RebootInstance requests a reboot of the instance
func (c *AwsClient) RebootInstance(ctx context.Context, instanceID string, dryRun bool) error {
	_, err := c.client.RebootInstances(ctx, &ec2.RebootInstancesInput{
		InstanceIds: []string{instanceID},
		DryRun:      aws.Bool(dryRun),
	})
	return c.result("reboot_instances", instanceID, dryRun, err)
}

// TerminateInstance requests termination of the instance
func (c *AwsClient) TerminateInstance(ctx context.Context, instanceID string, dryRun bool) error {
	_, err := c.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{instanceID},
		DryRun:      aws.Bool(dryRun),
	})
	return c.result("terminate_instances", instanceID, dryRun, err)
}

// WaitUntil blocks until every instance in instanceIDs reports state, using the
// SDK waiter for that state. The wait is bounded by the client's maxWait.
func (c *AwsClient) WaitUntil(ctx context.Context, state models.State, instanceIDs []string) error {
	logger := c.logger.With(
		zap.String("function", "WaitUntil"),
		zap.String("state", string(state)),
		zap.Strings("instance_ids", instanceIDs),
	)

	input := &ec2.DescribeInstancesInput{InstanceIds: instanceIDs}

	var err error
	switch state {
	case models.StateRunning:
		err = ec2.NewInstanceRunningWaiter(c.client).Wait(ctx, input, c.maxWait)
	case models.StateStopped:
		err = ec2.NewInstanceStoppedWaiter(c.client).Wait(ctx, input, c.maxWait)
	case models.StateTerminated:
		err = ec2.NewInstanceTerminatedWaiter(c.client).Wait(ctx, input, c.maxWait)
	default:
		return errors.New(errors.ErrAWSAPI, fmt.Sprintf("no waiter for state %q", state), nil, nil)
	}

	if err != nil {
		logger.Error("Wait for state failed",
			zap.String("operation", "wait_until"),
			zap.Error(err),
		)
		return Classify(err)
	}

	logger.Debug("Instances reached state", zap.String("operation", "wait_until"))
	return nil
}

func (c *AwsClient) result(operation, instanceID string, dryRun bool, err error) error {
	logger := c.logger.With(
		zap.String("operation", operation),
		zap.String("instance_id", instanceID),
		zap.Bool("dry_run", dryRun),
	)
	if err != nil {
		err = Classify(err)
		if errors.Is(err, errors.ErrDryRun) {
			logger.Info("Dry run answered", zap.String("answer", errors.MessageOf(err)))
			return err
		}
		logger.Warn("State change request returned an error", zap.Error(err))
		return err
	}
	logger.Info("State change requested")
	return nil
}

func toInstance(i types.Instance) models.Instance {
	instance := models.Instance{
		InstanceID:     aws.ToString(i.InstanceId),
		InstanceType:   string(i.InstanceType),
		PrivateIP:      aws.ToString(i.PrivateIpAddress),
		PublicIP:       aws.ToString(i.PublicIpAddress),
		PublicDnsName:  aws.ToString(i.PublicDnsName),
		VpcID:          aws.ToString(i.VpcId),
		SubnetID:       aws.ToString(i.SubnetId),
		KeyName:        aws.ToString(i.KeyName),
		LaunchTime:     aws.ToTime(i.LaunchTime),
		Tags:           parseTags(i.Tags),
		SecurityGroups: parseSecurityGroups(i.SecurityGroups),
	}

	if i.State != nil {
		instance.State = models.State(i.State.Name)
	}
	if i.StateReason != nil {
		instance.StateReason = aws.ToString(i.StateReason.Code)
	}
	if i.Placement != nil {
		instance.AvailabilityZone = aws.ToString(i.Placement.AvailabilityZone)
	}
	if i.IamInstanceProfile != nil {
		instance.IAMProfileARN = aws.ToString(i.IamInstanceProfile.Arn)
	}
	if i.Monitoring != nil {
		instance.Monitoring = string(i.Monitoring.State)
	}
	for _, tag := range instance.Tags {
		if tag.Key == "Name" {
			instance.Name = tag.Value
			break
		}
	}

	return instance
}

func parseTags(tags []types.Tag) []models.Tag {
	result := make([]models.Tag, 0, len(tags))
	for _, tag := range tags {
		result = append(result, models.Tag{
			Key:   aws.ToString(tag.Key),
			Value: aws.ToString(tag.Value),
		})
	}
	return result
}

func parseSecurityGroups(groups []types.GroupIdentifier) []models.SecurityGroup {
	result := make([]models.SecurityGroup, 0, len(groups))
	for _, group := range groups {
		result = append(result, models.SecurityGroup{
			GroupName: aws.ToString(group.GroupName),
			GroupId:   aws.ToString(group.GroupId),
		})
	}
	return result
}
