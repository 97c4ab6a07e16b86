//go:build linux

package portfind

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

const sysTTYRoot = "/sys/class/tty"

// enrichDescriptor fills in the attributes Linux exposes through sysfs that
// the portable enumerator cannot supply: subsystem, manufacturer, interface
// name, physical location and the sysfs nodes of the USB device and
// interface. Enrichment is best effort; attributes stay absent when sysfs
// does not provide them.
func enrichDescriptor(d *PortDescriptor) {
	var st unix.Stat_t
	if err := unix.Stat(d.Device, &st); err != nil || st.Mode&unix.S_IFMT != unix.S_IFCHR {
		return
	}

	devDir, err := filepath.EvalSymlinks(filepath.Join(sysTTYRoot, d.Name, "device"))
	if err != nil {
		return
	}

	if target, err := os.Readlink(filepath.Join(devDir, "subsystem")); err == nil {
		subsystem := filepath.Base(target)
		d.Subsystem = &subsystem
	}

	usbIface, usbDev := locateUsbNodes(devDir)
	if usbDev == "" {
		return
	}
	d.UsbDevicePath = &usbDev
	if usbIface != "" {
		d.UsbInterfacePath = &usbIface
	}

	if v, ok := readSysAttr(usbDev, "idVendor"); ok {
		if vid, ok := parseUsbID(v); ok {
			d.VID = &vid
		}
	}
	if v, ok := readSysAttr(usbDev, "idProduct"); ok {
		if pid, ok := parseUsbID(v); ok {
			d.PID = &pid
		}
	}
	if v, ok := readSysAttr(usbDev, "manufacturer"); ok {
		d.Manufacturer = &v
	}
	if v, ok := readSysAttr(usbDev, "product"); ok {
		d.Product = &v
	}
	if v, ok := readSysAttr(usbDev, "serial"); ok {
		d.SerialNumber = &v
	}
	if usbIface != "" {
		if v, ok := readSysAttr(usbIface, "interface"); ok {
			d.Interface = &v
		}
		location := filepath.Base(usbIface)
		d.Location = &location
	}

	// The interface name, when present, describes the port more precisely
	// than the device-level product string.
	switch {
	case d.Interface != nil:
		d.Description = d.Interface
	case d.Product != nil:
		d.Description = d.Product
	}

	vid, _ := readSysAttr(usbDev, "idVendor")
	pid, _ := readSysAttr(usbDev, "idProduct")
	serial := ""
	if d.SerialNumber != nil {
		serial = *d.SerialNumber
	}
	location := ""
	if d.Location != nil {
		location = *d.Location
	}
	if hwid := buildHWID(vid, pid, serial, location); hwid != "" {
		d.HWID = &hwid
	}
}

// locateUsbNodes walks up from a tty's sysfs device directory to the USB
// interface directory (e.g. .../1-2:1.0) and the USB device directory
// above it (the one carrying idVendor).
func locateUsbNodes(devDir string) (usbIface, usbDev string) {
	dir := devDir
	for i := 0; i < 6 && dir != "/"; i++ {
		if _, err := os.Stat(filepath.Join(dir, "idVendor")); err == nil {
			return usbIface, dir
		}
		if _, err := os.Stat(filepath.Join(dir, "bInterfaceNumber")); err == nil {
			usbIface = dir
		}
		dir = filepath.Dir(dir)
	}
	return "", ""
}

func readSysAttr(dir, name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", false
	}
	return v, true
}
