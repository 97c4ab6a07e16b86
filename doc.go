// Package portfind locates serial (COM) port devices by matching attribute
// criteria against the set of currently attached devices, so callers can
// stop hard-coding port names that drift across reboots and machines.
//
// The core surface is two stateless functions:
//
//	path, err := portfind.FindPort(portfind.Criteria{
//		"product":       "Marlin USB Device",
//		"serial_number": "55736",
//	})
//
// resolves the criteria to exactly one device path, failing with
// ErrNoSuchPort when nothing matches and with an *AmbiguousPortError when
// more than one device does; and
//
//	info, err := portfind.PortInfo("/dev/ttyACM0")
//
// returns the full attribute map of one attached device, which is the
// easiest way to discover usable criteria values.
//
// Matching is exact and type-sensitive: strings compare case-sensitively
// with no substring semantics, and the integer attributes (vid, pid) only
// match int criteria values. Every call enumerates the attached devices
// afresh; nothing is cached, watched or opened.
//
// A DI-managed Service wrapper adds structured logging and metrics on top
// of the same core for applications using the station-manager container.
package portfind
