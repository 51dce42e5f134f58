package event

// Handler processes specific event types
// Components implement this interface to observe playback
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase of a tick
	HandleEvent(ev Event)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(Event)
}

func (h HandlerFunc) HandleEvent(ev Event) { h.Fn(ev) }
func (h HandlerFunc) EventTypes() []EventType { return h.Types }

// Router dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the loop goroutine
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type Router struct {
	handlers map[EventType][]Handler
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll consumes all pending events and routes them in FIFO order
// All handlers for an event are called before moving to the next event
// Returns the number of events consumed
func (r *Router) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
