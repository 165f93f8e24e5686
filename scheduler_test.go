package reactive

import "testing"

func TestTransaction_BatchesMultipleWritesIntoOneRun(t *testing.T) {
	ResetGlobalState()
	a := NewObservableValue("a", 1)
	b := NewObservableValue("b", 2)

	var snapshots [][2]int
	r := Autorun(func() { snapshots = append(snapshots, [2]int{a.Get(), b.Get()}) })
	defer r.Dispose()

	if len(snapshots) != 1 || snapshots[0] != [2]int{1, 2} {
		t.Fatalf("snapshots = %v, want [[1 2]]", snapshots)
	}

	Transaction(func() {
		a.Set(10)
		b.Set(20)
	})

	if len(snapshots) != 2 {
		t.Fatalf("snapshots = %v, want exactly 2 entries (one rerun per transaction)", snapshots)
	}
	if snapshots[1] != [2]int{10, 20} {
		t.Fatalf("snapshots[1] = %v, want [10 20] (both writes must be visible together)", snapshots[1])
	}
}

func TestTransaction_NestedOnlyDrainsAtOutermostExit(t *testing.T) {
	ResetGlobalState()
	a := NewObservableValue("a", 1)

	var runs int
	r := Autorun(func() { a.Get(); runs++ })
	defer r.Dispose()

	Transaction(func() {
		Transaction(func() {
			a.Set(2)
		})
		// Still inside the outer transaction: the reaction must not have
		// run again yet even though the inner transaction "closed".
		if runs != 1 {
			t.Fatalf("runs = %d, want 1 (nested transaction exit must not drain reactions)", runs)
		}
		a.Set(3)
	})

	if runs != 2 {
		t.Fatalf("runs = %d, want 2 after the outermost transaction exits", runs)
	}
}

func TestUntracked_DoesNotBindDependency(t *testing.T) {
	ResetGlobalState()
	a := NewObservableValue("a", 1)
	b := NewObservableValue("b", 100)

	var runs int
	r := Autorun(func() {
		a.Get()
		Untracked(func() { b.Get() })
		runs++
	})
	defer r.Dispose()

	if runs != 1 {
		t.Fatalf("runs = %d, want 1", runs)
	}

	b.Set(200)
	if runs != 1 {
		t.Fatalf("runs = %d, want 1 (b was read untracked and must not trigger a rerun)", runs)
	}

	a.Set(2)
	if runs != 2 {
		t.Fatalf("runs = %d, want 2 after a tracked dependency changed", runs)
	}
}
