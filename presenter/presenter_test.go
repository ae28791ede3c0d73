package presenter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"ec2ctl/awsd/models"
)

func init() {
	color.NoColor = true
}

func webInstance() models.Instance {
	return models.Instance{
		InstanceID:       "i-123",
		Name:             "web",
		State:            models.StateRunning,
		InstanceType:     "t3.micro",
		PrivateIP:        "10.0.0.1",
		PublicIP:         "54.0.0.1",
		PublicDnsName:    "ec2-54-0-0-1.compute-1.amazonaws.com",
		VpcID:            "vpc-1",
		SubnetID:         "subnet-1",
		KeyName:          "ops",
		LaunchTime:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		AvailabilityZone: "us-east-1a",
		IAMProfileARN:    "arn:aws:iam::123456789012:instance-profile/web",
		Monitoring:       "disabled",
		Tags:             []models.Tag{{Key: "Name", Value: "web"}, {Key: "env", Value: "prod"}},
		SecurityGroups:   []models.SecurityGroup{{GroupName: "default", GroupId: "sg-1"}},
	}
}

func TestPrintList_Brief(t *testing.T) {
	stopped := models.Instance{
		InstanceID:  "i-456",
		State:       models.StateStopped,
		StateReason: "Client.UserInitiatedShutdown",
		PrivateIP:   "10.0.0.2",
	}

	var out bytes.Buffer
	NewPrinter(&out, false).PrintList([]models.Instance{webInstance(), stopped})

	expected := strings.Join([]string{
		"Instances: 2",
		strings.Repeat("~", 50),
		"#1",
		"Instance ID:               i-123",
		"Name:                      web",
		"State:                     RUNNING",
		"Private IP address:        10.0.0.1",
		strings.Repeat("~", 50),
		"#2",
		"Instance ID:               i-456",
		"Name:                      ",
		"State:                     STOPPED - Reason: Client.UserInitiatedShutdown",
		"Private IP address:        10.0.0.2",
		"",
	}, "\n")
	assert.Equal(t, expected, out.String())
}

func TestPrintList_Empty(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out, true).PrintList(nil)
	assert.Equal(t, "Instances: 0\n", out.String())
}

func TestPrintList_Verbose(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out, true).PrintList([]models.Instance{webInstance()})

	text := out.String()
	assert.Contains(t, text, "Instance type:             t3.micro\n")
	assert.Contains(t, text, "Location:                  us-east-1a\n")
	assert.Contains(t, text, "IAM instance profile ARN:  arn:aws:iam::123456789012:instance-profile/web\n")
	assert.Contains(t, text, "Launch time:               2024-05-01 12:00:00 UTC\n")
	assert.Contains(t, text, "Public DNS name:           ec2-54-0-0-1.compute-1.amazonaws.com\n")
	assert.Contains(t, text, "Tags:\n                           Name = web\n                           env = prod\n")
	assert.Contains(t, text, "Security groups:\n                           GroupName = default, GroupID = sg-1\n")
}

func TestPrintDetail_IgnoresVerbosity(t *testing.T) {
	instance := webInstance()
	instance.PublicIP = ""
	instance.PublicDnsName = ""
	instance.IAMProfileARN = ""
	instance.Tags = nil

	var out bytes.Buffer
	NewPrinter(&out, false).PrintDetail(instance)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Instances: 1\n"))
	assert.Contains(t, text, "VPC ID:                    vpc-1\n")
	assert.NotContains(t, text, "Public IP address:")
	assert.NotContains(t, text, "Public DNS name:")
	assert.NotContains(t, text, "IAM instance profile ARN:")
	assert.NotContains(t, text, "Tags:")
	assert.Contains(t, text, "Security groups:\n")
}
