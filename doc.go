// Package reactive implements a transparent, dependency-tracking reactive
// runtime: atoms hold state, computed values derive state, and reactions
// run side effects whenever the state they read changes. Dependencies
// between them are discovered automatically by observing which atoms are
// read during a computation; callers never declare a dependency list.
//
// # Core Types
//
//   - Atom is the lowest-level observable cell. It carries no value of its
//     own; it exists to participate in the dependency graph.
//   - ObservableValue[T] pairs an Atom with a value of type T, the way most
//     callers will hold state.
//   - Computed[T] derives a value from other observables. It is lazily
//     evaluated, and memoized while it has at least one observer: reading
//     it twice without an intervening dependency change then returns the
//     cached value without recomputation. A Computed with no observers
//     recomputes on every read.
//   - Reaction runs a side-effecting function whenever its dependencies
//     change. Reactions are the terminal consumers of the graph; nothing
//     observes a reaction.
//
// # Example Usage
//
//	price := reactive.NewObservableValue("price", 10)
//	qty := reactive.NewObservableValue("qty", 2)
//	total := reactive.NewComputed("total", func() int {
//	    return price.Get() * qty.Get()
//	})
//
//	stop := reactive.Autorun(func() {
//	    fmt.Println("total:", total.Get())
//	})
//	defer stop.Dispose()
//
//	reactive.Transaction(func() {
//	    price.Set(12)
//	    qty.Set(3)
//	})
//	// The autorun runs exactly once, after both writes have landed
//	// (total itself is recomputed after each write inside the batch).
//
// # Concurrency
//
// This package is NOT safe for concurrent use from multiple goroutines
// against the same graph. The tracking stack, the transaction depth, and
// the pending-reaction queue are plain package state with no locking,
// matching the single-threaded, cooperative model the propagation
// algorithm depends on. Callers that need cross-goroutine coordination
// must serialize access to the graph themselves (for example, by running
// all mutations on one goroutine and communicating results out via
// channels). The context-aware helpers (AutorunContext) are the one
// exception: they arrange for Dispose to be called when a context is
// canceled, and that cancellation is expected to be synchronized with the
// owning goroutine by the caller.
//
// # Panic Safety
//
// A panic inside a computed's getter is captured rather than crashing the
// process: the computed caches the panic value and re-raises it on every
// read until a dependency changes and the getter is retried. A panic
// inside a reaction's function is logged (or handed to an OnPanic hook)
// and the reaction stays subscribed, ready to retry on the next change.
//
// # Design Principles
//
//  1. Dependencies are discovered, never declared. Reading v.Get() inside
//     a tracked computation is the only thing that creates an edge.
//  2. Propagation is glitch-free. A value is never observed in a
//     partially-updated, inconsistent state: every computed and reaction
//     downstream of a change is fully stale before any of them revalidate.
//  3. Computed values are pure. They may not mutate atoms. Under strict
//     mode, only code inside an Action (or AllowStateChanges(true, ...))
//     may.
//  4. Batched writes settle once. Any number of atom writes inside a
//     Transaction produce at most one run of each affected reaction.
package reactive
