package reactive

// Atom is the smallest unit of observable state: an identity and an
// observer set, with no value of its own. Most callers reach for
// ObservableValue instead, which pairs an Atom with a value of type T, but
// Atom is exposed directly for cases that need to participate in the
// dependency graph without the runtime ever holding the value itself (for
// example, a value that lives in an external cache and is merely fronted
// by the graph).
type Atom struct {
	id   nodeID
	name string
	observableCore

	onBecomeObserved   func()
	onBecomeUnobserved func()
}

// NewAtom creates an atom. onBecomeObserved and onBecomeUnobserved, if
// non-nil, fire on the 0→1 and 1→0 transitions of the observer count —
// the hook most often used to start and stop an external data source
// (a subscription, a poller, a socket) only while something actually cares
// about this atom's value.
func NewAtom(name string, onBecomeObserved, onBecomeUnobserved func()) *Atom {
	a := &Atom{
		id:                 nextNodeID(),
		name:               name,
		observableCore:     newObservableCore(),
		onBecomeObserved:   onBecomeObserved,
		onBecomeUnobserved: onBecomeUnobserved,
	}
	return a
}

func (a *Atom) nodeID() nodeID    { return a.id }
func (a *Atom) nodeName() string { return a.name }

func (a *Atom) addObserver(d derivation) {
	wasEmpty := len(a.observers) == 0
	a.observableCore.addObserver(d)
	if wasEmpty && a.onBecomeObserved != nil {
		a.onBecomeObserved()
	}
}

func (a *Atom) removeObserver(d derivation) {
	if _, ok := a.observers[d.nodeID()]; !ok {
		return
	}
	a.observableCore.removeObserver(d)
	if len(a.observers) == 0 && a.onBecomeUnobserved != nil {
		a.onBecomeUnobserved()
	}
}

// ReportObserved records a read of this atom by whatever derivation is
// currently tracking, if any. Callers building their own observable types
// on top of Atom call this at the start of their getter.
func (a *Atom) ReportObserved() {
	if d := globalCtx.activeBindingTarget(); d != nil {
		d.recordDependency(a)
	}
}

// ReportChanged broadcasts that this atom's value changed: every observer
// is marked stale and then, in the same synchronous call, notified ready,
// so that all downstream computed values settle before control returns to
// the caller. If no transaction is currently open, ReportChanged opens and
// closes a single-write batch of its own so reactions still run exactly
// once per call.
func (a *Atom) ReportChanged() {
	globalCtx.checkMutationAllowed()

	openedOwnBatch := globalCtx.transactionDepth == 0
	if openedOwnBatch {
		globalCtx.startBatch()
	}

	propagateStaleness(a)
	notifyObserversReady(a, true)
	globalCtx.emitSpy(SpyEvent{Type: SpyUpdate, Name: a.name})

	if openedOwnBatch {
		globalCtx.endBatch()
	}
}
