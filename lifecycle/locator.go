package lifecycle

import (
	"fmt"

	"ec2ctl/awsd/models"
	"ec2ctl/errors"
)

// Locate returns the instance whose ID equals instanceID exactly
func Locate(instances []models.Instance, instanceID string) (*models.Instance, error) {
	for i := range instances {
		if instances[i].InstanceID == instanceID {
			return &instances[i], nil
		}
	}
	return nil, errors.New(errors.ErrInstanceNotFound,
		fmt.Sprintf("No instance found with id: %s", instanceID),
		map[string]interface{}{
			"instance_id": instanceID,
			"searched":    len(instances),
		}, nil)
}

// Filter selects which instances List returns
type Filter int

const (
	FilterAll Filter = iota
	FilterRunning
	FilterStopped
)

// FilterInstances keeps the instances matching filter, preserving order
func FilterInstances(instances []models.Instance, filter Filter) []models.Instance {
	var state models.State
	switch filter {
	case FilterRunning:
		state = models.StateRunning
	case FilterStopped:
		state = models.StateStopped
	default:
		return instances
	}

	result := make([]models.Instance, 0, len(instances))
	for _, instance := range instances {
		if instance.State == state {
			result = append(result, instance)
		}
	}
	return result
}
