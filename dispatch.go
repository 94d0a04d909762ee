package xhrmock

import (
	"errors"
	"fmt"

	"github.com/tarmac-project/xhrmock/xhr"
)

// Dispatch outcomes reported to Metrics.
const (
	OutcomeMatched   = "matched"
	OutcomePending   = "pending"
	OutcomeUnhandled = "unhandled"
	OutcomeFailed    = "failed"
)

// Metrics receives one record per dispatched request: the outcome and the
// number of handlers that were invoked.
type Metrics interface {
	Record(outcome string, tried int)
}

// PendingMetrics is implemented by Metrics that also want to know when a
// pending request is completed.
type PendingMetrics interface {
	Metrics
	Settled()
}

// Ensure Mock can be installed as a request transport.
var (
	_ xhr.Transport      = (*Mock)(nil)
	_ xhr.ListenerSource = (*Mock)(nil)
)

// RoundTrip runs msg through the registered handlers in registration order.
// The first handler that does not decline decides the outcome. When every
// handler declines, the request fails with ErrNoHandler as a network error.
// A panicking handler stops dispatch and its error is returned to Send.
func (m *Mock) RoundTrip(msg *xhr.Message, complete func(xhr.Outcome)) error {
	req := newRequest(msg)
	m.registry.record(req)

	log := m.log.With().
		Str("request_id", req.ID()).
		Str("method", req.Method()).
		Str("url", req.URL()).
		Logger()

	res := NewResponse()
	handlers := m.registry.snapshot()
	for i, h := range handlers {
		result, err := invoke(h, req, res)
		if err != nil {
			log.Warn().Err(err).Int("handler", i).Msg("handler failed")
			m.record(OutcomeFailed, i+1)
			return err
		}

		switch result.kind {
		case resultNoMatch:
			continue
		case resultPending:
			log.Debug().Int("handler", i).Msg("request pending")
			m.record(OutcomePending, i+1)
			res.arm(m.settle(complete))
			return nil
		case resultResolved:
			log.Debug().Int("handler", i).Msg("request matched")
			m.record(OutcomeMatched, i+1)
			if result.res != nil {
				result.res.resolve(complete)
			} else {
				res.resolve(complete)
			}
			return nil
		}
	}

	log.Warn().Int("handlers", len(handlers)).Msg("no handler matched request")
	m.record(OutcomeUnhandled, len(handlers))
	complete(xhr.Outcome{Kind: xhr.OutcomeError, Err: errors.Join(xhr.ErrNetwork, ErrNoHandler)})
	return nil
}

// GlobalListeners returns the listeners registered for event, in registration order.
func (m *Mock) GlobalListeners(event xhr.EventType) []xhr.Listener {
	return m.registry.listenersFor(event)
}

// invoke calls h, converting a panic into an ErrHandlerFailed error.
func invoke(h Handler, req *Request, res *Response) (result Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			if perr, ok := p.(error); ok {
				err = errors.Join(ErrHandlerFailed, perr)
				return
			}
			err = fmt.Errorf("%w: %v", ErrHandlerFailed, p)
		}
	}()
	return h(req, res), nil
}

// settle wraps complete so PendingMetrics hear about the completion.
func (m *Mock) settle(complete func(xhr.Outcome)) func(xhr.Outcome) {
	pm, ok := m.metrics.(PendingMetrics)
	if !ok {
		return complete
	}
	return func(o xhr.Outcome) {
		pm.Settled()
		complete(o)
	}
}

func (m *Mock) record(outcome string, tried int) {
	if m.metrics != nil {
		m.metrics.Record(outcome, tried)
	}
}
