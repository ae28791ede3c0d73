package models

import "time"

// State is the provider-reported lifecycle state of an instance
type State string

const (
	StatePending      State = "pending"
	StateRunning      State = "running"
	StateStopping     State = "stopping"
	StateStopped      State = "stopped"
	StateShuttingDown State = "shutting-down"
	StateTerminated   State = "terminated"
)

// IsTerminal reports whether no transition can leave the state
func (s State) IsTerminal() bool {
	return s == StateTerminated
}

// Instance represents the structure of an EC2 instance
type Instance struct {
	InstanceID       string
	Name             string
	State            State
	StateReason      string
	InstanceType     string
	PrivateIP        string
	PublicIP         string
	PublicDnsName    string
	VpcID            string
	SubnetID         string
	KeyName          string
	LaunchTime       time.Time
	AvailabilityZone string
	IAMProfileARN    string
	Monitoring       string
	Tags             []Tag
	SecurityGroups   []SecurityGroup
}

// Tag is a key/value pair, kept in the order the API returned it
type Tag struct {
	Key   string
	Value string
}

// SecurityGroup represents a security group associated with an instance
type SecurityGroup struct {
	GroupName string
	GroupId   string
}
