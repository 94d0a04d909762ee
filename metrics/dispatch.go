package metrics

import (
	"fmt"

	"github.com/tarmac-project/xhrmock"
)

// DefaultPrefix starts every dispatch metric name.
const DefaultPrefix = "xhrmock"

// Dispatch reports xhrmock dispatch decisions to the host metrics capability:
//
//	<prefix>_dispatch_<outcome>   counter per outcome
//	<prefix>_handlers_tried       histogram of handlers invoked per request
//	<prefix>_pending              gauge of pending requests not yet completed
type Dispatch struct {
	outcomes map[string]*Counter
	tried    *Histogram
	pending  *Gauge
}

var _ xhrmock.PendingMetrics = (*Dispatch)(nil)

// NewDispatch registers the dispatch metrics on h. An empty prefix means DefaultPrefix.
func NewDispatch(h *Host, prefix string) (*Dispatch, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	d := &Dispatch{outcomes: make(map[string]*Counter)}
	for _, outcome := range []string{
		xhrmock.OutcomeMatched,
		xhrmock.OutcomePending,
		xhrmock.OutcomeUnhandled,
		xhrmock.OutcomeFailed,
	} {
		c, err := h.NewCounter(fmt.Sprintf("%s_dispatch_%s", prefix, outcome))
		if err != nil {
			return nil, fmt.Errorf("outcome counter %s: %w", outcome, err)
		}
		d.outcomes[outcome] = c
	}

	var err error
	if d.tried, err = h.NewHistogram(prefix + "_handlers_tried"); err != nil {
		return nil, fmt.Errorf("handlers histogram: %w", err)
	}
	if d.pending, err = h.NewGauge(prefix + "_pending"); err != nil {
		return nil, fmt.Errorf("pending gauge: %w", err)
	}
	return d, nil
}

// Record counts one dispatch.
func (d *Dispatch) Record(outcome string, tried int) {
	if c, ok := d.outcomes[outcome]; ok {
		c.Inc()
	}
	d.tried.Observe(float64(tried))
	if outcome == xhrmock.OutcomePending {
		d.pending.Inc()
	}
}

// Settled marks one pending request as completed.
func (d *Dispatch) Settled() {
	d.pending.Dec()
}
