package portfind

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuchPort is returned when no attached serial device matches the
	// given criteria, or no device has the given path.
	ErrNoSuchPort = errors.New("portfind: no matching serial port")

	// ErrAmbiguousPort is returned when two or more attached serial devices
	// match the given criteria. Use errors.As with *AmbiguousPortError to
	// inspect the conflicting device paths.
	ErrAmbiguousPort = errors.New("portfind: multiple serial ports match")

	// ErrUnknownAttribute is returned when a criteria key names no
	// recognized port attribute.
	ErrUnknownAttribute = errors.New("portfind: unknown port attribute")

	// ErrNotInitialized is returned by Service methods before Initialize.
	ErrNotInitialized = errors.New("portfind: service not initialized")
)

// AmbiguousPortError reports criteria that matched more than one device.
// It carries every matching device path, in enumeration order, so callers
// can present them for disambiguation.
type AmbiguousPortError struct {
	Criteria Criteria
	Devices  []string
}

func (e *AmbiguousPortError) Error() string {
	return fmt.Sprintf("portfind: %d serial ports match criteria %s: %s",
		len(e.Devices), e.Criteria, strings.Join(e.Devices, ", "))
}

// Is makes errors.Is(err, ErrAmbiguousPort) hold for this type.
func (e *AmbiguousPortError) Is(target error) bool {
	return target == ErrAmbiguousPort
}
