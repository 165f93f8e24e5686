package reactive

import (
	"strings"
	"testing"
)

func TestGetDependencyTree_ListsTransitiveDependencies(t *testing.T) {
	ResetGlobalState()
	price := NewObservableValue("price", 10)
	qty := NewObservableValue("qty", 2)
	total := NewComputed("total", func() int { return price.Get() * qty.Get() })

	r := Autorun(func() { total.Get() })
	defer r.Dispose()

	out := GetDependencyTree(r).String()
	for _, name := range []string{"autorun", "total", "price", "qty"} {
		if !strings.Contains(out, name) {
			t.Fatalf("dependency tree %q missing node %q", out, name)
		}
	}
}

func TestGetObserverTree_ListsTransitiveObservers(t *testing.T) {
	ResetGlobalState()
	price := NewObservableValue("price", 10)
	total := NewComputed("total", func() int { return price.Get() * 2 })

	r := Autorun(func() { total.Get() }, ReactionOption{Name: "printer"})
	defer r.Dispose()

	out := GetObserverTree(price.Atom()).String()
	for _, name := range []string{"price", "total", "printer"} {
		if !strings.Contains(out, name) {
			t.Fatalf("observer tree %q missing node %q", out, name)
		}
	}
}

func TestSpy_ReceivesActionAndUpdateEvents(t *testing.T) {
	ResetGlobalState()
	v := NewObservableValue("v", 1)

	var types []SpyEventType
	stop := Spy(func(e SpyEvent) { types = append(types, e.Type) })
	defer stop()

	Action("bump", func() { v.Set(2) })

	wantFirst, wantLast := SpyActionStart, SpyActionEnd
	if len(types) == 0 || types[0] != wantFirst {
		t.Fatalf("types = %v, want first event %v", types, wantFirst)
	}
	if types[len(types)-1] != wantLast {
		t.Fatalf("types = %v, want last event %v", types, wantLast)
	}
	found := false
	for _, ty := range types {
		if ty == SpyUpdate {
			found = true
		}
	}
	if !found {
		t.Fatalf("types = %v, want an update event somewhere in the middle", types)
	}
}
