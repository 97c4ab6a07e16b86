//go:build !linux

package portfind

// enrichDescriptor is a no-op on platforms without a sysfs-style attribute
// tree; the portable enumerator record is all we get.
func enrichDescriptor(d *PortDescriptor) {}
