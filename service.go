package portfind

import (
	"fmt"
	"sync"
	"time"

	"github.com/Station-Manager/logging"
	"go.uber.org/atomic"
)

// ServiceName is the name this service registers under in the DI container.
const ServiceName = "portfind"

// Service is the DI-managed face of the resolver. It delegates to the same
// stateless core as the package-level functions and adds outcome logging
// and metrics. The zero value is usable after Initialize; the logger is
// optional and injected by the container when one is present.
type Service struct {
	LoggerService *logging.Service `di.inject:"logger"`

	initialized    atomic.Bool
	metricsEnabled atomic.Bool
	metrics        *Metrics

	// Initialization synchronization - ensures Initialize() runs only once
	initOnce sync.Once
	initErr  error
}

func (s *Service) Initialize() error {
	s.initOnce.Do(func() {
		s.initErr = s.doInitialize()
	})
	return s.initErr
}

func (s *Service) doInitialize() error {
	if s.initialized.Load() {
		return nil
	}

	s.metrics = &Metrics{}
	s.metricsEnabled.Store(true) // Enable by default

	s.initialized.Store(true)
	return nil
}

// FindPort resolves the criteria to exactly one attached serial device and
// returns its device path. See the package-level FindPort for the contract.
func (s *Service) FindPort(criteria Criteria) (string, error) {
	if !s.initialized.Load() {
		return "", ErrNotInitialized
	}

	matches, err := s.enumerateMatches(criteria)
	if err != nil {
		return "", err
	}
	s.recordLookup(len(matches))

	switch len(matches) {
	case 0:
		s.bump(&s.metrics.NotFoundLookups)
		s.debugLog("no serial port matches", "criteria", criteria.String())
		return "", fmt.Errorf("%w: criteria %s", ErrNoSuchPort, criteria)
	case 1:
		s.bump(&s.metrics.ResolvedLookups)
		s.debugLog("resolved serial port", "criteria", criteria.String(), "device", matches[0].Device)
		return matches[0].Device, nil
	default:
		s.bump(&s.metrics.AmbiguousLookups)
		paths := devicePaths(matches)
		s.debugLog("ambiguous serial port criteria", "criteria", criteria.String(), "matches", paths)
		return "", &AmbiguousPortError{Criteria: criteria, Devices: paths}
	}
}

// FindPorts returns the device paths of every matching attached device,
// in enumeration order.
func (s *Service) FindPorts(criteria Criteria) ([]string, error) {
	if !s.initialized.Load() {
		return nil, ErrNotInitialized
	}

	matches, err := s.enumerateMatches(criteria)
	if err != nil {
		return nil, err
	}
	s.recordLookup(len(matches))
	return devicePaths(matches), nil
}

// DescribePort returns the descriptor of the device with exactly the given
// path, or an error wrapping ErrNoSuchPort.
func (s *Service) DescribePort(device string) (*PortDescriptor, error) {
	if !s.initialized.Load() {
		return nil, ErrNotInitialized
	}

	s.bump(&s.metrics.InfoLookups)
	d, err := DescribePort(device)
	if err != nil {
		s.bump(&s.metrics.InfoNotFound)
		s.debugLog("serial port info lookup failed", "device", device, "error", err)
		return nil, err
	}
	return d, nil
}

// PortInfo returns the full attribute map of the device with exactly the
// given path. See the package-level PortInfo for the contract.
func (s *Service) PortInfo(device string) (map[string]any, error) {
	d, err := s.DescribePort(device)
	if err != nil {
		return nil, err
	}
	return d.Attributes(), nil
}

// AvailablePorts returns the device paths of all attached serial ports.
func (s *Service) AvailablePorts() ([]string, error) {
	if !s.initialized.Load() {
		return nil, ErrNotInitialized
	}
	return AvailablePorts()
}

// enumerateMatches is the metric-recording variant of findMatches.
func (s *Service) enumerateMatches(criteria Criteria) ([]*PortDescriptor, error) {
	if err := criteria.Validate(); err != nil {
		s.bump(&s.metrics.CriteriaErrors)
		return nil, err
	}

	s.bump(&s.metrics.Enumerations)
	descriptors, err := enumerateDescriptors()
	if err != nil {
		s.bump(&s.metrics.EnumerationFailures)
		s.debugLog("serial port enumeration failed", "error", err)
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

func (s *Service) recordLookup(matchCount int) {
	if !s.metricsEnabled.Load() || s.metrics == nil {
		return
	}
	s.metrics.Lookups.Add(1)
	s.metrics.LastMatchCount.Store(int64(matchCount))
	s.metrics.LastLookupTime.Store(time.Now().Unix())
}

func (s *Service) bump(counter *atomic.Int64) {
	if s.metricsEnabled.Load() && s.metrics != nil {
		counter.Add(1)
	}
}

func (s *Service) debugLog(msg string, kv ...any) {
	if s.LoggerService != nil {
		ev := s.LoggerService.DebugWith()
		for i := 0; i+1 < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				key = fmt.Sprint(kv[i])
			}
			ev = ev.Interface(key, kv[i+1])
		}
		ev.Msg(msg)
	}
}
