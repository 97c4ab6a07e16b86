package portfind

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.bug.st/serial/enumerator"
)

// Attribute keys recognized in filter criteria and attribute maps.
const (
	AttrDevice           = "device"
	AttrName             = "name"
	AttrDescription      = "description"
	AttrHWID             = "hwid"
	AttrVID              = "vid"
	AttrPID              = "pid"
	AttrSerialNumber     = "serial_number"
	AttrLocation         = "location"
	AttrManufacturer     = "manufacturer"
	AttrProduct          = "product"
	AttrInterface        = "interface"
	AttrSubsystem        = "subsystem"
	AttrUsbDevicePath    = "usb_device_path"
	AttrUsbInterfacePath = "usb_interface_path"
)

type attrKind int

const (
	kindString attrKind = iota
	kindInt
)

// knownAttributes maps every recognized attribute key to its value kind.
// Criteria keys are validated against this table.
var knownAttributes = map[string]attrKind{
	AttrDevice:           kindString,
	AttrName:             kindString,
	AttrDescription:      kindString,
	AttrHWID:             kindString,
	AttrVID:              kindInt,
	AttrPID:              kindInt,
	AttrSerialNumber:     kindString,
	AttrLocation:         kindString,
	AttrManufacturer:     kindString,
	AttrProduct:          kindString,
	AttrInterface:        kindString,
	AttrSubsystem:        kindString,
	AttrUsbDevicePath:    kindString,
	AttrUsbInterfacePath: kindString,
}

// PortDescriptor is a snapshot of one attached serial device's identifying
// attributes, taken at enumeration time. Device and Name are always set;
// all other attributes are platform- and device-dependent, and a nil
// pointer means the attribute is absent (distinct from empty or zero).
type PortDescriptor struct {
	// Device is the OS device path, e.g. /dev/ttyACM0 or COM3.
	Device string

	// Name is the base name of the device path, e.g. ttyACM0.
	Name string

	Description  *string
	HWID         *string
	VID          *int
	PID          *int
	SerialNumber *string
	Location     *string
	Manufacturer *string
	Product      *string
	Interface    *string
	Subsystem    *string

	// Sysfs nodes of the underlying USB device and interface, when the
	// platform exposes them (Linux only).
	UsbDevicePath    *string
	UsbInterfacePath *string
}

// Attributes renders the descriptor as an attribute map keyed by the Attr*
// constants. Every known attribute key is present; absent attributes map
// to nil. Present values are string or int according to the attribute.
func (d *PortDescriptor) Attributes() map[string]any {
	m := map[string]any{
		AttrDevice:           d.Device,
		AttrName:             d.Name,
		AttrDescription:      nil,
		AttrHWID:             nil,
		AttrVID:              nil,
		AttrPID:              nil,
		AttrSerialNumber:     nil,
		AttrLocation:         nil,
		AttrManufacturer:     nil,
		AttrProduct:          nil,
		AttrInterface:        nil,
		AttrSubsystem:        nil,
		AttrUsbDevicePath:    nil,
		AttrUsbInterfacePath: nil,
	}
	putStr := func(key string, v *string) {
		if v != nil {
			m[key] = *v
		}
	}
	putStr(AttrDescription, d.Description)
	putStr(AttrHWID, d.HWID)
	putStr(AttrSerialNumber, d.SerialNumber)
	putStr(AttrLocation, d.Location)
	putStr(AttrManufacturer, d.Manufacturer)
	putStr(AttrProduct, d.Product)
	putStr(AttrInterface, d.Interface)
	putStr(AttrSubsystem, d.Subsystem)
	putStr(AttrUsbDevicePath, d.UsbDevicePath)
	putStr(AttrUsbInterfacePath, d.UsbInterfacePath)
	if d.VID != nil {
		m[AttrVID] = *d.VID
	}
	if d.PID != nil {
		m[AttrPID] = *d.PID
	}
	return m
}

// fromPortDetails builds a descriptor from one enumerator record.
// VID and PID arrive as hex strings; unparsable values are left absent.
func fromPortDetails(p *enumerator.PortDetails) *PortDescriptor {
	d := &PortDescriptor{
		Device: p.Name,
		Name:   filepath.Base(p.Name),
	}

	if !p.IsUSB {
		return d
	}

	if v, ok := parseUsbID(p.VID); ok {
		d.VID = &v
	}
	if v, ok := parseUsbID(p.PID); ok {
		d.PID = &v
	}
	if p.SerialNumber != "" {
		sn := p.SerialNumber
		d.SerialNumber = &sn
	}
	if p.Product != "" {
		prod := p.Product
		d.Product = &prod
		// Best portable guess; Linux enrichment may refine it.
		d.Description = &prod
	}

	if hwid := buildHWID(p.VID, p.PID, p.SerialNumber, ""); hwid != "" {
		d.HWID = &hwid
	}
	return d
}

// parseUsbID parses a 16-bit USB vendor/product ID from its hex form.
func parseUsbID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// buildHWID assembles the conventional hardware ID string,
// e.g. "USB VID:PID=2341:0043 SER=55736 LOCATION=1-2:1.0".
func buildHWID(vid, pid, serial, location string) string {
	if vid == "" || pid == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "USB VID:PID=%s:%s", strings.ToUpper(vid), strings.ToUpper(pid))
	if serial != "" {
		fmt.Fprintf(&b, " SER=%s", serial)
	}
	if location != "" {
		fmt.Fprintf(&b, " LOCATION=%s", location)
	}
	return b.String()
}
