package portfind

import "fmt"

// FindPort resolves the given criteria to exactly one attached serial
// device and returns its device path.
//
// Zero matching devices return an error wrapping ErrNoSuchPort; two or
// more return a *AmbiguousPortError carrying every matching path. An
// unrecognized criteria key returns an error wrapping ErrUnknownAttribute.
// Failures of the underlying enumeration are passed through wrapped, never
// swallowed or retried.
//
// The call is stateless and idempotent: every invocation enumerates the
// attached devices afresh, so the result is accurate as of the moment of
// the call. The port is not opened or locked.
func FindPort(criteria Criteria) (string, error) {
	matches, err := findMatches(criteria)
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: criteria %s", ErrNoSuchPort, criteria)
	case 1:
		return matches[0].Device, nil
	default:
		return "", &AmbiguousPortError{Criteria: criteria, Devices: devicePaths(matches)}
	}
}

// FindPorts returns the device paths of every attached serial device
// matching the criteria, in enumeration order. No matches is not an error:
// the result is an empty slice.
func FindPorts(criteria Criteria) ([]string, error) {
	matches, err := findMatches(criteria)
	if err != nil {
		return nil, err
	}
	return devicePaths(matches), nil
}

// DescribePort returns the full descriptor of the device whose path equals
// the given path exactly, or an error wrapping ErrNoSuchPort.
func DescribePort(device string) (*PortDescriptor, error) {
	if err := validatePortName(device); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSuchPort, err)
	}

	descriptors, err := enumerateDescriptors()
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}
	for _, d := range descriptors {
		if d.Device == device {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchPort, device)
}

// PortInfo returns the full attribute map of the device whose path equals
// the given path exactly. Every recognized attribute key is present in the
// map; attributes the platform could not supply map to nil. The map is
// suitable for inspection and for constructing future filter criteria.
func PortInfo(device string) (map[string]any, error) {
	d, err := DescribePort(device)
	if err != nil {
		return nil, err
	}
	return d.Attributes(), nil
}

// findMatches enumerates the attached devices and filters them by the
// criteria, preserving enumeration order.
func findMatches(criteria Criteria) ([]*PortDescriptor, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	descriptors, err := enumerateDescriptors()
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}

	var matches []*PortDescriptor
	for _, d := range descriptors {
		if criteria.matches(d) {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

func devicePaths(descriptors []*PortDescriptor) []string {
	paths := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		paths = append(paths, d.Device)
	}
	return paths
}
