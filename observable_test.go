package reactive

import "testing"

func TestObservableValue_GetSet(t *testing.T) {
	ResetGlobalState()
	v := NewObservableValue("v", 1)
	if got := v.Get(); got != 1 {
		t.Fatalf("Get() = %d, want 1", got)
	}
	v.Set(2)
	if got := v.Get(); got != 2 {
		t.Fatalf("Get() after Set = %d, want 2", got)
	}
}

func TestObservableValue_SetEqualValueIsNoop(t *testing.T) {
	ResetGlobalState()
	v := NewObservableValue("v", 5)

	var runs int
	r := Autorun(func() { v.Get(); runs++ })
	defer r.Dispose()

	v.Set(5) // equal to current value, must not trigger a rerun
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (equal write should be a no-op)", runs)
	}

	v.Set(6)
	if runs != 2 {
		t.Fatalf("runs = %d, want 2 after an actual change", runs)
	}
}

func TestObservableValue_Update(t *testing.T) {
	ResetGlobalState()
	v := NewObservableValue("v", 10)
	v.Update(func(n int) int { return n + 1 })
	if got := v.Get(); got != 11 {
		t.Fatalf("Get() = %d, want 11", got)
	}
}

func TestObservableValue_CustomEqual(t *testing.T) {
	ResetGlobalState()
	type point struct{ x, y int }
	samePoint := func(a, b point) bool { return a.x == b.x } // ignore y on purpose

	v := NewObservableValue("p", point{1, 1}, ObservableOption[point]{Equal: samePoint})

	var runs int
	r := Autorun(func() { v.Get(); runs++ })
	defer r.Dispose()

	v.Set(point{1, 99}) // x unchanged per the custom comparer
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (custom equal should have suppressed the write)", runs)
	}

	v.Set(point{2, 99})
	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}
}

func TestObservableValue_Enhancer(t *testing.T) {
	ResetGlobalState()
	clamp := func(newValue, oldValue int) int {
		if newValue < 0 {
			return 0
		}
		return newValue
	}
	v := NewObservableValue("v", 0, ObservableOption[int]{Enhancer: clamp})
	v.Set(-5)
	if got := v.Get(); got != 0 {
		t.Fatalf("Get() = %d, want 0 (enhancer should have clamped)", got)
	}
}

func TestObservableValue_AsReadOnly(t *testing.T) {
	ResetGlobalState()
	v := NewObservableValue("v", 1)
	ro := v.AsReadOnly()
	if got := ro.Get(); got != 1 {
		t.Fatalf("Get() = %d, want 1", got)
	}
	v.Set(2)
	if got := ro.Get(); got != 2 {
		t.Fatalf("Get() after underlying Set = %d, want 2", got)
	}
}

func TestObservableValue_StrictModeDisallowsMutationOutsideAction(t *testing.T) {
	ResetGlobalState()
	SetStrictMode(true)
	defer SetStrictMode(false)

	v := NewObservableValue("v", 1)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic mutating outside an action under strict mode")
		}
		err, ok := r.(*Error)
		if !ok || err.Kind != ErrStateMutationDisallowed {
			t.Fatalf("got %v, want *Error{Kind: ErrStateMutationDisallowed}", r)
		}
	}()
	v.Set(2)
}

func TestObservableValue_ActionAllowsMutationUnderStrictMode(t *testing.T) {
	ResetGlobalState()
	SetStrictMode(true)
	defer SetStrictMode(false)

	v := NewObservableValue("v", 1)
	Action("bump", func() { v.Set(2) })
	if got := v.Get(); got != 2 {
		t.Fatalf("Get() = %d, want 2", got)
	}
}
