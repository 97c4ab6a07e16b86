package portfind

import (
	"fmt"
	"sort"
	"strings"
)

// Criteria is a set of attribute/value pairs a caller supplies to narrow
// the port search. Keys must be recognized attribute keys (see the Attr*
// constants); values are compared for exact, type-sensitive equality
// against the corresponding descriptor attribute. String attributes take
// string values, vid and pid take int values. An empty Criteria matches
// every attached device.
type Criteria map[string]any

// Validate checks every key against the recognized attribute set.
// An unrecognized key returns an error wrapping ErrUnknownAttribute.
func (c Criteria) Validate() error {
	for key := range c {
		if _, ok := knownAttributes[key]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAttribute, key)
		}
	}
	return nil
}

// String renders the criteria as sorted key=value pairs for error messages
// and logging. An empty criteria set renders as "(any)".
func (c Criteria) String() string {
	if len(c) == 0 {
		return "(any)"
	}
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, c[key]))
	}
	return strings.Join(parts, " ")
}

// matches reports whether every criterion holds for the descriptor:
// the attribute must be present and equal to the expected value, with the
// expected value's Go type matching the attribute's kind. A type mismatch
// on a known key is a non-match, never an error.
func (c Criteria) matches(d *PortDescriptor) bool {
	for key, want := range c {
		if !attributeEquals(d, key, want) {
			return false
		}
	}
	return true
}

func attributeEquals(d *PortDescriptor, key string, want any) bool {
	switch knownAttributes[key] {
	case kindInt:
		wantInt, ok := want.(int)
		if !ok {
			return false
		}
		got := intAttribute(d, key)
		return got != nil && *got == wantInt
	default:
		wantStr, ok := want.(string)
		if !ok {
			return false
		}
		got := stringAttribute(d, key)
		return got != nil && *got == wantStr
	}
}

func intAttribute(d *PortDescriptor, key string) *int {
	switch key {
	case AttrVID:
		return d.VID
	case AttrPID:
		return d.PID
	}
	return nil
}

func stringAttribute(d *PortDescriptor, key string) *string {
	switch key {
	case AttrDevice:
		return &d.Device
	case AttrName:
		return &d.Name
	case AttrDescription:
		return d.Description
	case AttrHWID:
		return d.HWID
	case AttrSerialNumber:
		return d.SerialNumber
	case AttrLocation:
		return d.Location
	case AttrManufacturer:
		return d.Manufacturer
	case AttrProduct:
		return d.Product
	case AttrInterface:
		return d.Interface
	case AttrSubsystem:
		return d.Subsystem
	case AttrUsbDevicePath:
		return d.UsbDevicePath
	case AttrUsbInterfacePath:
		return d.UsbInterfacePath
	}
	return nil
}
