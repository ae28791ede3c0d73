package presenter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"ec2ctl/awsd/models"
)

const (
	separatorWidth = 50
	labelWidth     = 27
)

var (
	runningColor = color.New(color.FgGreen, color.Bold)
	stoppedColor = color.New(color.FgRed, color.Bold)
	pendingColor = color.New(color.FgYellow, color.Bold)
)

// Printer renders instances as text blocks
type Printer struct {
	out     io.Writer
	verbose bool
}

// NewPrinter returns a Printer writing to out. verbose adds the extended fields.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{out: out, verbose: verbose}
}

// PrintList prints a header with the count, then every instance
func (p *Printer) PrintList(instances []models.Instance) {
	p.print(instances, p.verbose)
}

// PrintDetail prints a single instance with every field, regardless of verbosity
func (p *Printer) PrintDetail(instance models.Instance) {
	p.print([]models.Instance{instance}, true)
}

// Line prints a single result line
func (p *Printer) Line(message string) {
	fmt.Fprintln(p.out, message)
}

func (p *Printer) print(instances []models.Instance, extended bool) {
	fmt.Fprintf(p.out, "Instances: %d\n", len(instances))
	for i, instance := range instances {
		fmt.Fprintln(p.out, strings.Repeat("~", separatorWidth))
		fmt.Fprintf(p.out, "#%d\n", i+1)
		p.field("Instance ID:", instance.InstanceID)
		p.field("Name:", instance.Name)
		p.field("State:", stateLine(instance))
		p.field("Private IP address:", instance.PrivateIP)

		if extended {
			p.extended(instance)
		}
	}
}

func (p *Printer) extended(instance models.Instance) {
	p.field("Instance type:", instance.InstanceType)
	p.field("Location:", instance.AvailabilityZone)
	if instance.IAMProfileARN != "" {
		p.field("IAM instance profile ARN:", instance.IAMProfileARN)
	}
	p.field("Key name:", instance.KeyName)
	p.field("Launch time:", launchTime(instance.LaunchTime))
	p.field("Monitoring:", instance.Monitoring)
	if instance.PublicIP != "" {
		p.field("Public IP address:", instance.PublicIP)
	}
	if instance.PublicDnsName != "" {
		p.field("Public DNS name:", instance.PublicDnsName)
	}
	p.field("VPC ID:", instance.VpcID)
	p.field("Subnet ID:", instance.SubnetID)

	if len(instance.Tags) > 0 {
		fmt.Fprintln(p.out, "Tags:")
		for _, tag := range instance.Tags {
			p.field("", fmt.Sprintf("%s = %s", tag.Key, tag.Value))
		}
	}

	fmt.Fprintln(p.out, "Security groups:")
	for _, group := range instance.SecurityGroups {
		p.field("", fmt.Sprintf("GroupName = %s, GroupID = %s", group.GroupName, group.GroupId))
	}
}

func (p *Printer) field(label, value string) {
	fmt.Fprintf(p.out, "%-*s%s\n", labelWidth, label, value)
}

func stateLine(instance models.Instance) string {
	name := strings.ToUpper(string(instance.State))
	switch instance.State {
	case models.StateRunning:
		return runningColor.Sprint(name)
	case models.StateStopped, models.StateTerminated:
		name = stoppedColor.Sprint(name)
	default:
		name = pendingColor.Sprint(name)
	}
	return fmt.Sprintf("%s - Reason: %s", name, instance.StateReason)
}

func launchTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
