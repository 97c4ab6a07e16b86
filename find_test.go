package portfind

import (
	"errors"
	"testing"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

// withDescriptors overrides the enumeration seam for the duration of a test.
func withDescriptors(t *testing.T, descriptors []*PortDescriptor, err error) {
	t.Helper()
	orig := enumerateDescriptors
	enumerateDescriptors = func() ([]*PortDescriptor, error) { return descriptors, err }
	t.Cleanup(func() { enumerateDescriptors = orig })
}

// marlinPair is two printers of the same model distinguishable only by
// serial number.
func marlinPair() []*PortDescriptor {
	return []*PortDescriptor{
		{
			Device:       "/dev/ttyACM0",
			Name:         "ttyACM0",
			Product:      strp("Marlin USB Device"),
			SerialNumber: strp("AAA"),
			VID:          intp(0x0483),
			PID:          intp(0x5740),
		},
		{
			Device:       "/dev/ttyACM1",
			Name:         "ttyACM1",
			Product:      strp("Marlin USB Device"),
			SerialNumber: strp("BBB"),
			VID:          intp(0x0483),
			PID:          intp(0x5740),
		},
	}
}

func TestFindPortSingleMatch(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	path, err := FindPort(Criteria{AttrProduct: "Marlin USB Device", AttrSerialNumber: "AAA"})
	if err != nil {
		t.Fatalf("FindPort error: %v", err)
	}
	if path != "/dev/ttyACM0" {
		t.Fatalf("expected /dev/ttyACM0, got %q", path)
	}
}

func TestFindPortAmbiguous(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	_, err := FindPort(Criteria{AttrProduct: "Marlin USB Device"})
	if !errors.Is(err, ErrAmbiguousPort) {
		t.Fatalf("expected ErrAmbiguousPort, got: %v", err)
	}

	var ambiguous *AmbiguousPortError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected *AmbiguousPortError, got %T", err)
	}
	if len(ambiguous.Devices) != 2 {
		t.Fatalf("expected 2 conflicting devices, got %d", len(ambiguous.Devices))
	}
	if ambiguous.Devices[0] != "/dev/ttyACM0" || ambiguous.Devices[1] != "/dev/ttyACM1" {
		t.Fatalf("devices not in enumeration order: %v", ambiguous.Devices)
	}
}

func TestFindPortNoMatch(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	_, err := FindPort(Criteria{AttrProduct: "Nonexistent"})
	if !errors.Is(err, ErrNoSuchPort) {
		t.Fatalf("expected ErrNoSuchPort, got: %v", err)
	}
}

func TestFindPortEmptyCriteria(t *testing.T) {
	single := []*PortDescriptor{{Device: "/dev/ttyUSB0", Name: "ttyUSB0"}}

	tests := []struct {
		name        string
		descriptors []*PortDescriptor
		wantPath    string
		wantErr     error
	}{
		{"no devices", nil, "", ErrNoSuchPort},
		{"one device", single, "/dev/ttyUSB0", nil},
		{"two devices", marlinPair(), "", ErrAmbiguousPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withDescriptors(t, tt.descriptors, nil)

			path, err := FindPort(Criteria{})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindPort error: %v", err)
			}
			if path != tt.wantPath {
				t.Fatalf("expected %q, got %q", tt.wantPath, path)
			}
		})
	}
}

func TestFindPortTypeSensitiveEquality(t *testing.T) {
	withDescriptors(t, []*PortDescriptor{{
		Device:       "/dev/ttyACM0",
		Name:         "ttyACM0",
		SerialNumber: strp("1155"),
		VID:          intp(0x0483),
	}}, nil)

	tests := []struct {
		name     string
		criteria Criteria
	}{
		{"int against string attribute", Criteria{AttrSerialNumber: 1155}},
		{"string against int attribute", Criteria{AttrVID: "0483"}},
		{"case differs", Criteria{AttrSerialNumber: "1155", AttrDevice: "/DEV/TTYACM0"}},
		{"substring does not match", Criteria{AttrSerialNumber: "115"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindPort(tt.criteria)
			if !errors.Is(err, ErrNoSuchPort) {
				t.Fatalf("expected ErrNoSuchPort, got: %v", err)
			}
		})
	}

	// Sanity: matching types do match.
	path, err := FindPort(Criteria{AttrSerialNumber: "1155", AttrVID: 0x0483})
	if err != nil {
		t.Fatalf("FindPort error: %v", err)
	}
	if path != "/dev/ttyACM0" {
		t.Fatalf("expected /dev/ttyACM0, got %q", path)
	}
}

func TestFindPortUnknownAttribute(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	_, err := FindPort(Criteria{"serial_numer": "AAA"})
	if !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got: %v", err)
	}
}

func TestFindPortEnumerationFailure(t *testing.T) {
	enumErr := errors.New("permission denied")
	withDescriptors(t, nil, enumErr)

	_, err := FindPort(Criteria{})
	if !errors.Is(err, enumErr) {
		t.Fatalf("expected underlying enumeration error, got: %v", err)
	}
	if errors.Is(err, ErrNoSuchPort) || errors.Is(err, ErrAmbiguousPort) {
		t.Fatalf("enumeration failure must not be reported as a lookup outcome: %v", err)
	}
}

func TestFindPortIdempotent(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	criteria := Criteria{AttrSerialNumber: "BBB"}
	first, err := FindPort(criteria)
	if err != nil {
		t.Fatalf("first FindPort error: %v", err)
	}
	second, err := FindPort(criteria)
	if err != nil {
		t.Fatalf("second FindPort error: %v", err)
	}
	if first != second {
		t.Fatalf("identical criteria against unchanged devices diverged: %q vs %q", first, second)
	}
}

func TestFindPortsPreservesOrder(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	paths, err := FindPorts(Criteria{AttrProduct: "Marlin USB Device"})
	if err != nil {
		t.Fatalf("FindPorts error: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/dev/ttyACM0" || paths[1] != "/dev/ttyACM1" {
		t.Fatalf("unexpected paths: %v", paths)
	}
}

func TestFindPortsNoMatchIsEmptyNotError(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	paths, err := FindPorts(Criteria{AttrProduct: "Nonexistent"})
	if err != nil {
		t.Fatalf("FindPorts error: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no paths, got %v", paths)
	}
}

func TestPortInfoRoundTrip(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	criteria := Criteria{AttrProduct: "Marlin USB Device", AttrSerialNumber: "AAA"}
	path, err := FindPort(criteria)
	if err != nil {
		t.Fatalf("FindPort error: %v", err)
	}

	attrs, err := PortInfo(path)
	if err != nil {
		t.Fatalf("PortInfo error: %v", err)
	}
	for key, want := range criteria {
		if attrs[key] != want {
			t.Fatalf("attribute %q: expected %v, got %v", key, want, attrs[key])
		}
	}
}

func TestPortInfoUnknownPath(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	_, err := PortInfo("/dev/ttyACM9")
	if !errors.Is(err, ErrNoSuchPort) {
		t.Fatalf("expected ErrNoSuchPort, got: %v", err)
	}
}

func TestPortInfoRejectsBogusPath(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	for _, path := range []string{"/dev/../etc/passwd", "not-a-port", ""} {
		if _, err := PortInfo(path); !errors.Is(err, ErrNoSuchPort) {
			t.Fatalf("path %q: expected ErrNoSuchPort, got: %v", path, err)
		}
	}
}

func TestDescribePort(t *testing.T) {
	withDescriptors(t, marlinPair(), nil)

	d, err := DescribePort("/dev/ttyACM1")
	if err != nil {
		t.Fatalf("DescribePort error: %v", err)
	}
	if d.Device != "/dev/ttyACM1" || d.SerialNumber == nil || *d.SerialNumber != "BBB" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
}

func TestAvailablePorts(t *testing.T) {
	orig := getPortsList
	getPortsList = func() ([]string, error) { return []string{"/dev/ttyS0", "/dev/ttyACM0"}, nil }
	t.Cleanup(func() { getPortsList = orig })

	ports, err := AvailablePorts()
	if err != nil {
		t.Fatalf("AvailablePorts error: %v", err)
	}
	if len(ports) != 2 || ports[0] != "/dev/ttyS0" {
		t.Fatalf("unexpected ports: %v", ports)
	}
}
