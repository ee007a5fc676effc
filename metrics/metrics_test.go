package metrics

import "testing"

type captureRecorder struct {
	backendCalls int
	comparisons  int
}

func (c *captureRecorder) IncBackendCall(string, bool)                 { c.backendCalls++ }
func (c *captureRecorder) ObserveBackendSeconds(string, bool, float64) {}
func (c *captureRecorder) ObserveRetrievalSeconds(string, float64)     {}
func (c *captureRecorder) IncComparison(bool)                          { c.comparisons++ }

func TestSetRecorder(t *testing.T) {
	rec := &captureRecorder{}
	SetRecorder(rec)
	defer SetRecorder(nil)

	Default().IncBackendCall("openai", true)
	Default().IncComparison(false)
	if rec.backendCalls != 1 || rec.comparisons != 1 {
		t.Errorf("recorder saw %d calls, %d comparisons, want 1 and 1",
			rec.backendCalls, rec.comparisons)
	}
}

func TestNilRecorderRestoresNoop(t *testing.T) {
	SetRecorder(nil)
	if Default() == nil {
		t.Fatal("Default() must never be nil")
	}
	// No-op recorder must accept observations without panicking.
	Default().IncBackendCall("mock", false)
	Default().ObserveRetrievalSeconds("graph", 0.1)
}

func TestPromRecorderObservations(t *testing.T) {
	rec := NewPromRecorder()
	rec.IncBackendCall("groq", true)
	rec.IncBackendCall("groq", false)
	rec.ObserveBackendSeconds("groq", true, 0.25)
	rec.ObserveRetrievalSeconds("traditional", 0.002)
	rec.IncComparison(true)
	rec.IncComparison(false)
}
