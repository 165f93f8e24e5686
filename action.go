package reactive

// Transaction batches any number of atom writes inside fn so that
// reactions observing more than one of them run at most once, after
// everything has settled, rather than once per write. Transactions nest:
// the reaction queue only drains when the outermost Transaction returns.
func Transaction(fn func()) {
	globalCtx.startBatch()
	defer globalCtx.endBatch()
	fn()
}

// Untracked runs fn without recording any atom or computed reads it
// performs as dependencies of the derivation currently being tracked, if
// any. It is how a reaction or computed can peek at a value without
// subscribing to it.
func Untracked(fn func()) {
	prev := globalCtx.isTracking
	globalCtx.isTracking = false
	defer func() { globalCtx.isTracking = prev }()
	fn()
}

// AllowStateChanges temporarily overrides whether atom mutation is
// permitted while strict mode is enabled, restoring the previous setting
// when fn returns (including when fn panics).
func AllowStateChanges(allow bool, fn func()) {
	prev := globalCtx.allowWrites
	globalCtx.allowWrites = allow
	defer func() { globalCtx.allowWrites = prev }()
	fn()
}

// Action wraps fn in AllowStateChanges(true, ...) and a Transaction,
// and brackets it with spy events, mirroring the way MobX-style runtimes
// let user code other than a reaction's own body mutate state.
func Action(name string, fn func()) {
	globalCtx.emitSpy(SpyEvent{Type: SpyActionStart, Name: name})
	defer globalCtx.emitSpy(SpyEvent{Type: SpyActionEnd, Name: name})
	AllowStateChanges(true, func() {
		Transaction(fn)
	})
}
