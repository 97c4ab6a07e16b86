package portfind

import (
	gobug "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// allow tests to override external dependencies
var (
	listDetailedPorts    = enumerator.GetDetailedPortsList
	getPortsList         = gobug.GetPortsList
	enumerateDescriptors = nativeDescriptors
)

// nativeDescriptors takes a fresh snapshot of the currently attached serial
// devices. Each descriptor starts from the portable enumerator record and is
// then enriched with whatever extra attributes the platform can supply.
func nativeDescriptors() ([]*PortDescriptor, error) {
	ports, err := listDetailedPorts()
	if err != nil {
		return nil, err
	}

	descriptors := make([]*PortDescriptor, 0, len(ports))
	for _, p := range ports {
		d := fromPortDetails(p)
		enrichDescriptor(d)
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// AvailablePorts returns the device paths of all attached serial ports,
// without attribute details.
func AvailablePorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, err
	}
	return ports, nil
}
