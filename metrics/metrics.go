// Package metrics collects counters and timings for retrieval and
// generation. A no-op recorder is installed by default so library code can
// record unconditionally; the serve command swaps in the Prometheus recorder.
package metrics

import "sync/atomic"

// Recorder receives observations from the engine and the backend router.
type Recorder interface {
	IncBackendCall(backend string, ok bool)
	ObserveBackendSeconds(backend string, ok bool, seconds float64)
	ObserveRetrievalSeconds(strategy string, seconds float64)
	IncComparison(degraded bool)
}

var current atomic.Pointer[holder]

type holder struct{ r Recorder }

func init() {
	current.Store(&holder{r: noop{}})
}

// Default returns the active recorder.
func Default() Recorder {
	return current.Load().r
}

// SetRecorder replaces the active recorder. Pass nil to restore the no-op.
func SetRecorder(r Recorder) {
	if r == nil {
		r = noop{}
	}
	current.Store(&holder{r: r})
}

type noop struct{}

func (noop) IncBackendCall(string, bool)                 {}
func (noop) ObserveBackendSeconds(string, bool, float64) {}
func (noop) ObserveRetrievalSeconds(string, float64)     {}
func (noop) IncComparison(bool)                          {}
