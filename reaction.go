package reactive

import (
	"context"
	"log"
	"runtime/debug"
)

// Reaction runs a side-effecting function whenever the observables it
// reads change. It is the terminal node of the dependency graph: nothing
// observes a reaction, so propagation always stops here.
//
// A reaction moves through a small state machine: created idle, it runs
// once immediately (via Autorun) or on the first explicit Track call,
// which both produces its first dependency set and its first effect.
// From then on, any change to one of those dependencies schedules the
// reaction; scheduled reactions drain via runReactions, which runs each
// exactly once per batch no matter how many of its dependencies changed.
type Reaction struct {
	id   nodeID
	name string
	core derivationCore

	onInvalidate func(track func(func()))
	onPanic      func(recovered any, stack []byte)

	isScheduled    bool
	isRunning      bool
	isDisposed     bool
	pendingDispose bool

	stopCtxWatch func()
}

// NewReaction creates a reaction that does not run until Schedule or
// Track is called explicitly. onInvalidate is invoked each time the
// reaction runs (from the initial Track call or from the scheduler); it
// receives a track function that must be called exactly once with the
// actual effect body, establishing this run's dependency set.
func NewReaction(name string, onInvalidate func(track func(func()))) *Reaction {
	return &Reaction{id: nextNodeID(), name: name, onInvalidate: onInvalidate}
}

// Autorun creates a reaction around fn, runs it immediately to establish
// its first dependency set, and re-runs it automatically whenever any of
// those dependencies change.
func Autorun(fn func(), opts ...ReactionOption) *Reaction {
	cfg := applyReactionOptions(opts)
	name := cfg.name
	if name == "" {
		name = "autorun"
	}
	r := NewReaction(name, func(track func(func())) { track(fn) })
	r.onPanic = cfg.onPanic
	r.Track(fn)
	return r
}

// AutorunContext is Autorun plus automatic disposal when ctx is canceled.
// The cancellation watcher runs on its own goroutine; per the package's
// concurrency model, the caller is responsible for making sure that
// cancellation doesn't race with other mutation of this graph from
// another goroutine.
func AutorunContext(ctx context.Context, fn func(), opts ...ReactionOption) *Reaction {
	r := Autorun(fn, opts...)
	done := make(chan struct{})
	r.stopCtxWatch = func() {
		select {
		case <-done:
		default:
			close(done)
		}
	}
	go func() {
		select {
		case <-ctx.Done():
			r.Dispose()
		case <-done:
		}
	}()
	return r
}

func (r *Reaction) nodeID() nodeID      { return r.id }
func (r *Reaction) nodeName() string    { return r.name }
func (r *Reaction) allowsStateChanges() bool        { return true }
func (r *Reaction) recordDependency(dep observable) { r.core.recordDependency(dep) }
func (r *Reaction) observingSnapshot() []observable { return r.core.observingSnapshot() }

// IsScheduled reports whether this reaction is currently queued to run.
func (r *Reaction) IsScheduled() bool { return r.isScheduled }

// Schedule queues the reaction to run. It is a no-op if the reaction is
// already scheduled or has been disposed. If no transaction is open and
// the scheduler isn't already draining, Schedule runs the queue
// immediately.
func (r *Reaction) Schedule() {
	if r.isDisposed || r.isScheduled {
		return
	}
	r.isScheduled = true
	globalCtx.pendingReactions = append(globalCtx.pendingReactions, r)
	globalCtx.emitSpy(SpyEvent{Type: SpyReactionScheduled, Name: r.name})
	if globalCtx.transactionDepth == 0 && !globalCtx.isRunningReactions {
		runReactions()
	}
}

// Track runs fn as a tracked computation, establishing (or refreshing)
// this reaction's dependency set. It is exported so a caller building a
// custom onInvalidate can run its effect body through it; Autorun calls it
// for you.
func (r *Reaction) Track(fn func()) {
	if r.isDisposed {
		return
	}
	r.isRunning = true
	recovered := trackDerivedFunction(&r.core, r, fn)
	if recovered != nil {
		// Unlike a computed, a reaction keeps the dependency set read
		// before the panic: the partial run's bind is applied anyway, so
		// the reaction retries the next time any of those inputs change,
		// rather than silently going stale forever.
		partial := r.core.partial
		bindDependencies(r, r.core.observing, partial)
		r.core.observing = partial
		r.core.partial = nil
		r.reportPanic(recovered)
	}
	r.isRunning = false
	if r.pendingDispose {
		r.finalizeDispose()
	}
}

func (r *Reaction) reportPanic(recovered any) {
	if r.onPanic != nil {
		r.onPanic(recovered, debug.Stack())
	} else {
		log.Printf("reactive: panic in reaction %q: %v\n%s", r.name, recovered, debug.Stack())
	}
	globalCtx.emitSpy(SpyEvent{Type: SpyError, Name: r.name, Args: recovered})
}

func (r *Reaction) run() {
	if r.isDisposed {
		return
	}
	globalCtx.emitSpy(SpyEvent{Type: SpyReactionStart, Name: r.name})
	defer globalCtx.emitSpy(SpyEvent{Type: SpyReactionEnd, Name: r.name})
	r.onInvalidate(r.Track)
}

// Dispose stops the reaction and releases its dependency subscriptions.
// If called while the reaction is in the middle of running (for example,
// from within its own effect body), disposal is deferred until that run
// completes.
func (r *Reaction) Dispose() {
	if r.isDisposed {
		return
	}
	if r.isRunning {
		r.pendingDispose = true
		return
	}
	r.finalizeDispose()
}

func (r *Reaction) finalizeDispose() {
	bindDependencies(r, r.core.observing, nil)
	r.core.observing = nil
	r.isDisposed = true
	r.pendingDispose = false
	if r.stopCtxWatch != nil {
		r.stopCtxWatch()
	}
}

func (r *Reaction) onDependencyStale() {
	r.core.staleCount++
}

func (r *Reaction) onDependencyReady(changed bool) {
	r.core.staleCount--
	if changed {
		r.core.changeCount++
	}
	if r.core.staleCount == 0 {
		hasChange := r.core.changeCount > 0
		r.core.changeCount = 0
		if hasChange {
			r.Schedule()
		}
	}
}
