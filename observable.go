package reactive

// unchanged is the sentinel prepareNewValue returns when the incoming
// value is equal to the current one and the write should be a no-op.
type unchanged struct{}

var isUnchanged = unchanged{}

// ObservableValue pairs an Atom with a value of type T. It is the
// reactive-state primitive most callers reach for directly.
type ObservableValue[T comparable] struct {
	atom     *Atom
	value    T
	equal    EqualFunc[T]
	enhancer Enhancer[T]
}

// NewObservableValue creates an observable cell holding initial, with the
// given name used for introspection and spy events.
func NewObservableValue[T comparable](name string, initial T, opts ...ObservableOption[T]) *ObservableValue[T] {
	cfg := applyObservableOptions(opts)
	o := &ObservableValue[T]{
		equal:    cfg.equal,
		enhancer: cfg.enhancer,
	}
	if o.equal == nil {
		o.equal = defaultEqual[T]
	}
	o.atom = NewAtom(name, cfg.onBecomeObserved, cfg.onBecomeUnobserved)
	if o.enhancer != nil {
		initial = o.enhancer(initial, initial)
	}
	o.value = initial
	return o
}

// Atom exposes the underlying Atom, for callers that want to build their
// own introspection or want to pass just the identity of this value to
// GetObserverTree.
func (o *ObservableValue[T]) Atom() *Atom { return o.atom }

// Get reads the current value, recording a dependency on it if called
// from inside a tracked computation.
func (o *ObservableValue[T]) Get() T {
	o.atom.ReportObserved()
	return o.value
}

// Set stores newValue, running it through the enhancer (if any) and the
// equality check first; a value that compares equal to the current one is
// a no-op and does not broadcast a change.
func (o *ObservableValue[T]) Set(newValue T) {
	globalCtx.checkMutationAllowed()
	prepared := o.prepareNewValue(newValue)
	if prepared == isUnchanged {
		return
	}
	o.setNewValue(prepared.(T))
}

// Update applies fn to the current value and stores the result via Set.
// Unlike Get, the read does not record a dependency.
func (o *ObservableValue[T]) Update(fn func(T) T) {
	o.Set(fn(o.value))
}

func (o *ObservableValue[T]) prepareNewValue(newValue T) any {
	if o.enhancer != nil {
		newValue = o.enhancer(newValue, o.value)
	}
	if o.equal(o.value, newValue) {
		return isUnchanged
	}
	return newValue
}

func (o *ObservableValue[T]) setNewValue(v T) {
	o.value = v
	o.atom.ReportChanged()
}

// ReadOnlyValue exposes Get without Set or Update.
type ReadOnlyValue[T comparable] interface {
	Get() T
}

type readOnlyObservable[T comparable] struct {
	source *ObservableValue[T]
}

func (r readOnlyObservable[T]) Get() T { return r.source.Get() }

// AsReadOnly wraps o so callers downstream can be handed something that
// can be read but not written, without copying the value out.
func (o *ObservableValue[T]) AsReadOnly() ReadOnlyValue[T] {
	return readOnlyObservable[T]{source: o}
}
