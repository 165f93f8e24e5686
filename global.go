package reactive

// nodeID uniquely identifies an atom, computed value, or reaction for the
// lifetime of the process. It is the map key used throughout for O(1)
// observer add/remove, the same trick the rest of the package's ancestry
// uses for subscriber maps.
type nodeID uint64

// globalState is the single process-wide context the propagation
// algorithm runs against: the derivation-tracking stack, the current
// transaction depth, and the queue of reactions waiting to run. It is
// deliberately unsynchronized — see the package doc's Concurrency section.
type globalState struct {
	stack       []derivation
	isTracking  bool
	strictMode  bool
	allowWrites bool

	transactionDepth   int
	isRunningReactions bool
	pendingReactions   []*Reaction

	nodeSeq uint64
	runSeq  uint64

	spyListeners map[uint64]SpyListener
	spySeq       uint64
}

func newGlobalState() *globalState {
	return &globalState{
		allowWrites:  false,
		spyListeners: make(map[uint64]SpyListener),
	}
}

var globalCtx = newGlobalState()

// ResetGlobalState discards all pending reactions and tracking state and
// returns the runtime to its initial configuration. It does not touch
// atoms, observable values, computed values, or reactions already
// constructed — those keep their own state and simply stop being driven
// once reset. It exists for tests that need a clean slate between cases.
func ResetGlobalState() {
	globalCtx = newGlobalState()
}

// SetStrictMode turns strict mutation checking on or off. While enabled,
// mutating an atom outside of an action (or AllowStateChanges(true, ...))
// fails with ErrStateMutationDisallowed.
func SetStrictMode(enabled bool) {
	globalCtx.strictMode = enabled
}

func nextNodeID() nodeID {
	globalCtx.nodeSeq++
	return nodeID(globalCtx.nodeSeq)
}

func (g *globalState) bumpRunID() uint64 {
	g.runSeq++
	return g.runSeq
}

// activeBindingTarget returns the derivation that newly-read observables
// should bind to, or nil if nothing is currently tracking (either because
// nothing is being derived right now, or because Untracked suppressed it).
func (g *globalState) activeBindingTarget() derivation {
	if !g.isTracking || len(g.stack) == 0 {
		return nil
	}
	return g.stack[len(g.stack)-1]
}

// topOfStack reflects actual call nesting regardless of Untracked, used
// for purity enforcement (a computed may not write an atom even from
// inside an Untracked block nested in its own getter).
func (g *globalState) topOfStack() derivation {
	if len(g.stack) == 0 {
		return nil
	}
	return g.stack[len(g.stack)-1]
}

// pushDerivation enters tracking mode for self and returns a function that
// restores the prior stack/tracking state. It must be deferred immediately
// so that a panic inside the tracked function still unwinds the stack.
func (g *globalState) pushDerivation(self derivation) (restore func()) {
	g.stack = append(g.stack, self)
	prevTracking := g.isTracking
	g.isTracking = true
	return func() {
		g.stack = g.stack[:len(g.stack)-1]
		g.isTracking = prevTracking
	}
}

// pushDerivationUntracked pushes self onto the stack, for purity
// enforcement (checkMutationAllowed's topOfStack still sees self), but
// without entering tracking mode: nothing read during the call binds to
// self or to whatever was tracking before it. It must be deferred
// immediately so a panic still unwinds the stack.
func (g *globalState) pushDerivationUntracked(self derivation) (restore func()) {
	g.stack = append(g.stack, self)
	prevTracking := g.isTracking
	g.isTracking = false
	return func() {
		g.stack = g.stack[:len(g.stack)-1]
		g.isTracking = prevTracking
	}
}

func (g *globalState) checkMutationAllowed() {
	if d := g.topOfStack(); d != nil && !d.allowsStateChanges() {
		panic(newError(ErrStateMutationDisallowed, "atom mutated while %q is being computed", d.nodeName()))
	}
	if g.strictMode && !g.allowWrites {
		panic(newError(ErrStateMutationDisallowed, "atom mutated outside an action while strict mode is enabled"))
	}
}

func (g *globalState) startBatch() {
	g.transactionDepth++
}

func (g *globalState) endBatch() {
	g.transactionDepth--
	if g.transactionDepth == 0 {
		runReactions()
	}
}
