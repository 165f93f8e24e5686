package reactive

import "testing"

func TestAtom_ObserveHooks(t *testing.T) {
	ResetGlobalState()

	var observed, unobserved int
	a := NewAtom("a", func() { observed++ }, func() { unobserved++ })

	if observed != 0 || unobserved != 0 {
		t.Fatalf("hooks must not fire before any observer exists")
	}

	r := Autorun(func() { a.ReportObserved() })

	if observed != 1 {
		t.Fatalf("onBecomeObserved fired %d times, want 1", observed)
	}

	r.Dispose()
	if unobserved != 1 {
		t.Fatalf("onBecomeUnobserved fired %d times, want 1", unobserved)
	}
}

func TestAtom_ReportObservedOutsideTrackingIsNoop(t *testing.T) {
	ResetGlobalState()
	a := NewAtom("a", nil, nil)
	a.ReportObserved() // must not panic, must not add any observer
	if len(a.observers) != 0 {
		t.Fatalf("expected no observers, got %d", len(a.observers))
	}
}

func TestAtom_ReportChangedNotifiesObservers(t *testing.T) {
	ResetGlobalState()
	a := NewAtom("a", nil, nil)

	var runs int
	r := Autorun(func() {
		a.ReportObserved()
		runs++
	})
	defer r.Dispose()

	if runs != 1 {
		t.Fatalf("expected 1 run after creation, got %d", runs)
	}

	a.ReportChanged()
	if runs != 2 {
		t.Fatalf("expected 2 runs after ReportChanged, got %d", runs)
	}
}
