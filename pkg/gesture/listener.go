package gesture

import "sync"

// ClickKind identifies which tap gesture completed.
type ClickKind int

const (
	ClickSingle ClickKind = iota
	ClickLong
	ClickDouble
	ClickDual
)

func (k ClickKind) String() string {
	switch k {
	case ClickSingle:
		return "single"
	case ClickLong:
		return "long"
	case ClickDouble:
		return "double"
	case ClickDual:
		return "dual"
	}
	return "unknown"
}

// ClickListener observes completed tap gestures. Returning true suppresses
// the engine's default click behavior (e.g. the double-click zoom).
type ClickListener interface {
	OnMapClick(kind ClickKind, x, y float64) bool
}

// InteractionListener observes the start of a continuous gesture. The flags
// describe which families the gesture may drive. Returning true consumes the
// interaction: all Moves until the next pointer-down are ignored.
type InteractionListener interface {
	OnMapInteraction(panning, zooming, rotating, tilting bool) bool
}

// ClickFunc adapts a function to the ClickListener interface.
type ClickFunc func(kind ClickKind, x, y float64) bool

func (f ClickFunc) OnMapClick(kind ClickKind, x, y float64) bool {
	return f(kind, x, y)
}

// InteractionFunc adapts a function to the InteractionListener interface.
type InteractionFunc func(panning, zooming, rotating, tilting bool) bool

func (f InteractionFunc) OnMapInteraction(panning, zooming, rotating, tilting bool) bool {
	return f(panning, zooming, rotating, tilting)
}

// listenerHolder guards listener handles. Listeners may be swapped from a
// goroutine other than the one driving the engine, so both the swap and the
// synchronous dispatch hold the mutex. Listeners must not call back into
// the engine.
type listenerHolder struct {
	mu          sync.Mutex
	click       ClickListener
	interaction InteractionListener
}

func (h *listenerHolder) setClick(l ClickListener) {
	h.mu.Lock()
	h.click = l
	h.mu.Unlock()
}

func (h *listenerHolder) setInteraction(l InteractionListener) {
	h.mu.Lock()
	h.interaction = l
	h.mu.Unlock()
}

// dispatchClick invokes the click listener, if any, and reports whether the
// default behavior should be suppressed.
func (h *listenerHolder) dispatchClick(kind ClickKind, x, y float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.click == nil {
		return false
	}
	return h.click.OnMapClick(kind, x, y)
}

// dispatchInteraction invokes the interaction listener, if any, and reports
// whether the continuous gesture was consumed.
func (h *listenerHolder) dispatchInteraction(panning, zooming, rotating, tilting bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.interaction == nil {
		return false
	}
	return h.interaction.OnMapInteraction(panning, zooming, rotating, tilting)
}
