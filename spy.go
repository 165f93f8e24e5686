package reactive

import (
	"log"
	"runtime/debug"
)

// SpyEventType classifies a SpyEvent.
type SpyEventType string

const (
	SpyActionStart       SpyEventType = "action-start"
	SpyActionEnd         SpyEventType = "action-end"
	SpyUpdate            SpyEventType = "update"
	SpyReactionScheduled SpyEventType = "reaction-scheduled"
	SpyReactionStart     SpyEventType = "reaction-start"
	SpyReactionEnd       SpyEventType = "reaction-end"
	SpyError             SpyEventType = "error"
)

// SpyEvent is a single devtools-facing notification about something
// happening in the graph: an action starting or ending, an atom changing,
// a reaction being scheduled or run, or an error being captured.
type SpyEvent struct {
	Type SpyEventType
	Name string
	Args any
}

// SpyListener receives SpyEvents as they happen. A panic inside a
// listener is recovered and logged rather than propagated, the same way a
// panic inside a subscriber callback is handled elsewhere in this
// package.
type SpyListener func(SpyEvent)

// Unsubscribe stops a subscription created by Spy.
type Unsubscribe func()

// Spy registers listener to receive every SpyEvent emitted by the graph
// from this point on. Every action and every scheduled reaction run is
// bracketed by a *Start/*End pair of events; an atom update, a reaction
// being scheduled, and a captured error are each a single event.
func Spy(listener SpyListener) Unsubscribe {
	id := globalCtx.spySeq
	globalCtx.spySeq++
	globalCtx.spyListeners[id] = listener
	return func() { delete(globalCtx.spyListeners, id) }
}

func (g *globalState) emitSpy(evt SpyEvent) {
	if len(g.spyListeners) == 0 {
		return
	}
	for _, l := range g.spyListeners {
		invokeSpyListener(l, evt)
	}
}

func invokeSpyListener(l SpyListener, evt SpyEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("reactive: panic in spy listener: %v\n%s", r, debug.Stack())
		}
	}()
	l(evt)
}
