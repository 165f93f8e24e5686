package reactive

// Computed derives a value of type T from whatever observables its getter
// reads. It is both an observable (things can depend on a Computed the
// same way they depend on an Atom) and a derivation (it depends on
// whatever it read last time it ran).
//
// A Computed is hot while it has at least one observer: its cache is kept
// valid by the same stale/ready propagation that drives reactions, so a
// hot Computed's Get never recomputes, it only returns the cache. A cold
// Computed (no observers) recomputes on every Get, since nothing is
// maintaining its cache in the background; it still participates
// correctly in a tracked read (the reader becomes its observer and it
// goes hot from that point on).
type Computed[T comparable] struct {
	id   nodeID
	name string

	observableCore
	core derivationCore

	getter func() T
	setter func(T)
	equal  EqualFunc[T]

	cached       T
	hasCached    bool
	cachedPanic  any
	hasCachedErr bool
	isComputing  bool
}

// NewComputed creates a computed value. The getter is not called until
// the computed is first read.
func NewComputed[T comparable](name string, getter func() T, opts ...ComputedOption[T]) *Computed[T] {
	cfg := applyComputedOptions(opts)
	c := &Computed[T]{
		id:             nextNodeID(),
		name:           name,
		observableCore: newObservableCore(),
		getter:         getter,
		setter:         cfg.setter,
		equal:          cfg.equal,
	}
	if c.equal == nil {
		c.equal = defaultEqual[T]
	}
	return c
}

func (c *Computed[T]) nodeID() nodeID    { return c.id }
func (c *Computed[T]) nodeName() string { return c.name }

func (c *Computed[T]) allowsStateChanges() bool          { return false }
func (c *Computed[T]) recordDependency(dep observable)   { c.core.recordDependency(dep) }
func (c *Computed[T]) observingSnapshot() []observable   { return c.core.observingSnapshot() }

// Get returns the current value, computing it if necessary. If the getter
// panicked on the last computation, Get re-raises the same panic value.
func (c *Computed[T]) Get() T {
	outer := globalCtx.activeBindingTarget()
	wasHot := len(c.observers) > 0

	if outer != nil {
		outer.recordDependency(c)
	}

	if !wasHot {
		if outer == nil {
			// Regime 3: a genuinely untracked top-level read. Nothing will
			// ever be notified of changes to us, so compute without binding
			// anywhere at all, the same way Untracked suppresses binding for
			// a plain atom read.
			if len(c.core.observing) > 0 {
				// We were hot before and just lost our last observer; drop
				// the now-stale subscriptions from that period rather than
				// leaving them bound forever.
				bindDependencies(c, c.core.observing, nil)
				c.core.observing = nil
			}
			c.revalidateUntracked()
		} else {
			c.revalidate()
		}
	}

	if c.hasCachedErr {
		panic(c.cachedPanic)
	}
	return c.cached
}

// Set writes through the configured setter, if any, inside an action. It
// panics with ErrInvariantViolation if this computed has no setter.
func (c *Computed[T]) Set(v T) {
	if c.setter == nil {
		panic(newError(ErrInvariantViolation, "computed %q has no setter", c.name))
	}
	Action(c.name+".set", func() {
		c.setter(v)
	})
}

// revalidate recomputes the cached value, returning whether it changed
// (used by onDependencyReady to decide whether to keep propagating). It
// binds c as an observer of whatever the getter reads, the same as any
// other tracked computation.
func (c *Computed[T]) revalidate() bool {
	if c.isComputing {
		panic(newError(ErrCycleDetected, "computed %q read itself during its own computation", c.name))
	}
	c.isComputing = true
	var newValue T
	recovered := trackDerivedFunction(&c.core, c, func() {
		newValue = c.getter()
	})
	c.isComputing = false
	return c.cacheResult(newValue, recovered)
}

// revalidateUntracked recomputes the cached value without ever binding c
// (or c's observers) to anything the getter reads: the tracking stack
// still records c as the current derivation, so mutating an atom from
// inside the getter is still rejected, but no dependency is recorded and
// no observer edge is created or removed. Used for Computed.Get's regime
// 3, a fully untracked cold read.
func (c *Computed[T]) revalidateUntracked() {
	if c.isComputing {
		panic(newError(ErrCycleDetected, "computed %q read itself during its own computation", c.name))
	}
	c.isComputing = true
	var newValue T
	var recovered any
	restore := globalCtx.pushDerivationUntracked(c)
	func() {
		defer restore()
		defer func() {
			if r := recover(); r != nil {
				recovered = r
			}
		}()
		newValue = c.getter()
	}()
	c.isComputing = false
	c.cacheResult(newValue, recovered)
}

// cacheResult stores newValue (or the panic recovered while computing
// it) as the current cached result and returns whether the visible value
// changed.
func (c *Computed[T]) cacheResult(newValue T, recovered any) bool {
	if recovered != nil {
		c.hasCachedErr = true
		c.cachedPanic = recovered
		c.hasCached = false
		globalCtx.emitSpy(SpyEvent{Type: SpyError, Name: c.name, Args: recovered})
		return true
	}

	c.hasCachedErr = false
	if c.hasCached && c.equal(c.cached, newValue) {
		return false
	}
	c.cached = newValue
	c.hasCached = true
	return true
}

func (c *Computed[T]) onDependencyStale() {
	c.core.staleCount++
	if c.core.staleCount == 1 {
		propagateStaleness(c)
	}
}

func (c *Computed[T]) onDependencyReady(changed bool) {
	c.core.staleCount--
	if changed {
		c.core.changeCount++
	}
	if c.core.staleCount == 0 {
		hasChange := c.core.changeCount > 0
		c.core.changeCount = 0
		if hasChange {
			notifyObserversReady(c, c.revalidate())
		} else {
			notifyObserversReady(c, false)
		}
	}
}
