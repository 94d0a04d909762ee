package metrics

import (
	"errors"
	"regexp"

	proto "github.com/tarmac-project/protobuf-go/sdk/metrics"
	wapc "github.com/wapc/wapc-guest-tinygo"

	"github.com/tarmac-project/xhrmock/capability"
)

const (
	capabilityName = "metrics"
	fnCounter      = "counter"
	fnGauge        = "gauge"
	fnHistogram    = "histogram"
	actionInc      = "inc"
	actionDec      = "dec"
)

var (
	// ErrInvalidMetricName indicates a metric name that does not match the supported format.
	ErrInvalidMetricName = errors.New("metric name is invalid")

	isMetricNameValid = regexp.MustCompile(`^[a-zA-Z0-9_:][a-zA-Z0-9_:]*$`)
)

// Config controls how a Host client interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig capability.RuntimeConfig

	// HostCall overrides the waPC host function used for metrics operations.
	HostCall capability.HostCall
}

// Host creates metric handles backed by the host metrics capability.
type Host struct {
	runtime  capability.RuntimeConfig
	hostCall capability.HostCall
}

// emitter sends one metric payload. Emission is best-effort: marshal and
// host-call failures are dropped so metrics never change request outcomes.
type emitter struct {
	namespace string
	hostCall  capability.HostCall
}

type payload interface {
	MarshalVT() ([]byte, error)
}

func (e emitter) send(fn string, msg payload) {
	b, err := msg.MarshalVT()
	if err != nil {
		return
	}
	_, _ = e.hostCall(e.namespace, capabilityName, fn, b)
}

// Counter is a named counter metric handle.
type Counter struct {
	emitter
	name string
}

// Gauge is a named gauge metric handle.
type Gauge struct {
	emitter
	name string
}

// Histogram is a named histogram metric handle.
type Histogram struct {
	emitter
	name string
}

// New creates a metrics client with namespace defaults and optional host-call override.
func New(config Config) (*Host, error) {
	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}
	return &Host{runtime: config.SDKConfig.WithDefaults(), hostCall: hostCall}, nil
}

func (h *Host) newEmitter() emitter {
	return emitter{namespace: h.runtime.Namespace, hostCall: h.hostCall}
}

// NewCounter creates a named counter metric handle.
func (h *Host) NewCounter(name string) (*Counter, error) {
	if !isMetricNameValid.MatchString(name) {
		return nil, ErrInvalidMetricName
	}
	return &Counter{emitter: h.newEmitter(), name: name}, nil
}

// NewGauge creates a named gauge metric handle.
func (h *Host) NewGauge(name string) (*Gauge, error) {
	if !isMetricNameValid.MatchString(name) {
		return nil, ErrInvalidMetricName
	}
	return &Gauge{emitter: h.newEmitter(), name: name}, nil
}

// NewHistogram creates a named histogram metric handle.
func (h *Host) NewHistogram(name string) (*Histogram, error) {
	if !isMetricNameValid.MatchString(name) {
		return nil, ErrInvalidMetricName
	}
	return &Histogram{emitter: h.newEmitter(), name: name}, nil
}

// Inc increments the counter by one.
func (c *Counter) Inc() {
	c.send(fnCounter, &proto.MetricsCounter{Name: c.name})
}

// Inc increments the gauge by one.
func (g *Gauge) Inc() {
	g.send(fnGauge, &proto.MetricsGauge{Name: g.name, Action: actionInc})
}

// Dec decrements the gauge by one.
func (g *Gauge) Dec() {
	g.send(fnGauge, &proto.MetricsGauge{Name: g.name, Action: actionDec})
}

// Observe records a value for the histogram.
func (h *Histogram) Observe(value float64) {
	h.send(fnHistogram, &proto.MetricsHistogram{Name: h.name, Value: value})
}
