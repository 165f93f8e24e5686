package reactive

// observable is anything that can be read and depended upon: an Atom or a
// Computed value (a Computed is both an observable and a derivation, since
// it both has observers and observes its own dependencies).
type observable interface {
	nodeID() nodeID
	nodeName() string
	addObserver(d derivation)
	removeObserver(d derivation)
	observerSnapshot() []derivation
	diffValue() int
	setDiffValue(int)
}

// derivation is anything that observes other things: a Computed value or
// a Reaction.
type derivation interface {
	nodeID() nodeID
	nodeName() string
	recordDependency(dep observable)
	onDependencyStale()
	onDependencyReady(changed bool)
	allowsStateChanges() bool
}

// hasObserving is implemented by derivations that expose their current
// dependency set for introspection (Computed and Reaction both do).
type hasObserving interface {
	observingSnapshot() []observable
}

// observableCore holds the bookkeeping shared by anything that can be
// observed: its observer set and the scratch diff-value used by the bind
// algorithm below. Atom and Computed both embed it.
type observableCore struct {
	observers  map[nodeID]derivation
	diffValue_ int
}

func newObservableCore() observableCore {
	return observableCore{observers: make(map[nodeID]derivation)}
}

func (oc *observableCore) addObserver(d derivation) {
	if oc.observers == nil {
		oc.observers = make(map[nodeID]derivation)
	}
	oc.observers[d.nodeID()] = d
}

func (oc *observableCore) removeObserver(d derivation) {
	delete(oc.observers, d.nodeID())
}

func (oc *observableCore) observerSnapshot() []derivation {
	out := make([]derivation, 0, len(oc.observers))
	for _, d := range oc.observers {
		out = append(out, d)
	}
	return out
}

func (oc *observableCore) diffValue() int     { return oc.diffValue_ }
func (oc *observableCore) setDiffValue(v int) { oc.diffValue_ = v }

// derivationCore holds the bookkeeping shared by anything that observes
// other things: its current dependency set, the in-progress scratch list
// built up during a track, and the stale/ready counters used by glitch-free
// propagation (§4.4/§4.5 of the propagation algorithm this package
// implements).
type derivationCore struct {
	observing []observable
	scratch   []observable
	unbound   int

	runID uint64

	staleCount  int
	changeCount int

	// partial is the dependency list read before a panic interrupted a
	// track. Reaction.Track applies it despite the rollback described
	// below; Computed.revalidate ignores it.
	partial []observable
}

func (dc *derivationCore) recordDependency(dep observable) {
	if dc.unbound < len(dc.scratch) {
		dc.scratch[dc.unbound] = dep
	} else {
		dc.scratch = append(dc.scratch, dep)
	}
	dc.unbound++
}

func (dc *derivationCore) observingSnapshot() []observable {
	return append([]observable(nil), dc.observing...)
}

// trackDerivedFunction runs fn with self pushed onto the global tracking
// stack, collects every observable read during the call, and diffs that
// set against the previous one to add/remove observer edges in
// O(|old|+|new|).
//
// If fn panics, the previous observing set is restored (no bind changes
// are applied) and the recovered value is returned; the partial
// dependency list read before the panic is stashed on core.partial so a
// caller that wants it anyway (Reaction.Track) can apply it explicitly.
func trackDerivedFunction(core *derivationCore, self derivation, fn func()) (recovered any) {
	prevObserving := core.observing
	core.scratch = core.scratch[:0]
	core.unbound = 0
	core.runID = globalCtx.bumpRunID()

	restore := globalCtx.pushDerivation(self)
	func() {
		defer restore()
		defer func() {
			if r := recover(); r != nil {
				recovered = r
			}
		}()
		fn()
	}()

	newObserving := append([]observable(nil), core.scratch[:core.unbound]...)
	core.scratch = nil

	if recovered != nil {
		core.observing = prevObserving
		core.unbound = 0
		core.partial = newObserving
		return recovered
	}

	bindDependencies(self, prevObserving, newObserving)
	core.observing = newObserving
	core.partial = nil
	return nil
}

// bindDependencies diffs prev against next and issues exactly the
// add-observer/remove-observer calls needed to make self's observer edges
// match next, using a per-atom integer diff-value so no per-run allocation
// or O(n^2) scan is required.
func bindDependencies(self derivation, prev, next []observable) {
	for _, dep := range prev {
		dep.setDiffValue(-1)
	}
	for _, dep := range next {
		dv := dep.diffValue() + 1
		if dv == 1 {
			dep.setDiffValue(0)
			dep.addObserver(self)
		} else {
			dep.setDiffValue(dv)
		}
	}
	for _, dep := range prev {
		if dep.diffValue() < 0 {
			dep.setDiffValue(0)
			dep.removeObserver(self)
		}
	}
}

// propagateStaleness marks every observer of o as stale, recursing into
// any observer that is itself observable (a Computed) only when that
// observer just transitioned from settled to stale for this wave.
func propagateStaleness(o observable) {
	for _, d := range o.observerSnapshot() {
		d.onDependencyStale()
	}
}

// notifyObserversReady tells every observer of o that one of its
// dependencies has settled, carrying whether that dependency's value
// actually changed.
func notifyObserversReady(o observable, changed bool) {
	for _, d := range o.observerSnapshot() {
		d.onDependencyReady(changed)
	}
}
