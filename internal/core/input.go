package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H - move left
	ActionRight          // Right arrow, D, L - move right
	ActionFire           // Space, Up, K - fire
	ActionPause          // P, Escape - pause/unpause game
	ActionRestart        // R key - restart the session
	ActionQuit           // Q, Ctrl+C - exit game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsGameplay reports whether the action drives the simulation itself
// (as opposed to session control like pause or quit).
func (a Action) IsGameplay() bool {
	return a == ActionLeft || a == ActionRight || a == ActionFire
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// ActionQueue buffers discrete gameplay actions between ticks so that
// each tick consumes at most one of them. When full, the oldest action is dropped.
type ActionQueue struct {
	items []Action
	limit int
}

// NewActionQueue creates a queue holding at most limit actions.
func NewActionQueue(limit int) *ActionQueue {
	if limit < 1 {
		limit = 1
	}
	return &ActionQueue{items: make([]Action, 0, limit), limit: limit}
}

// Push appends an action, dropping the oldest one if the queue is full.
func (q *ActionQueue) Push(a Action) {
	if len(q.items) == q.limit {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, a)
}

// Pop removes and returns the oldest action, or ActionNone when empty.
func (q *ActionQueue) Pop() Action {
	if len(q.items) == 0 {
		return ActionNone
	}
	a := q.items[0]
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	return a
}

// Len returns the number of queued actions.
func (q *ActionQueue) Len() int {
	return len(q.items)
}

// Reset drops every queued action.
func (q *ActionQueue) Reset() {
	q.items = q.items[:0]
}
