// Package duty provides the countdown timers that drive every timed transition
// in the simulation.
//
// A Timer carries a purpose tag. Repurposing a timer switches the tag and
// reloads the remaining time from a per-subsystem duration table, so a single
// timer can represent "death countdown", "revival flash" and "invincible" in
// turn. Tags are local to one subsystem and are never compared across tables.
package duty

// Table maps purpose tags to their duration in ticks.
// Tags without an entry have a duration of zero.
type Table[T comparable] map[T]float64

// Duration returns the duration registered for tag.
func (t Table[T]) Duration(tag T) float64 {
	return t[tag]
}

// Timer is a tagged countdown. The zero value is unusable; create timers with New.
// Timer is a value type: copying it copies the countdown state, the duration
// table is shared.
type Timer[T comparable] struct {
	remaining float64
	tag       T
	table     Table[T]
}

// New creates a timer repurposed to the initial tag.
func New[T comparable](table Table[T], initial T) Timer[T] {
	t := Timer[T]{table: table}
	t.Repurpose(initial)
	return t
}

// WithTable returns a copy of t that reads durations from table. The tag and
// the remaining time are kept.
func (t Timer[T]) WithTable(table Table[T]) Timer[T] {
	t.table = table
	return t
}

// Repurpose sets the timer's tag and reloads the remaining time from the table.
func (t *Timer[T]) Repurpose(tag T) {
	t.tag = tag
	t.remaining = t.table.Duration(tag)
}

// Tick subtracts dt from the remaining time, clamping at zero.
func (t *Timer[T]) Tick(dt float64) {
	t.remaining -= dt
	if t.remaining < 0 {
		t.remaining = 0
	}
}

// TimeIsUp reports whether the remaining time has reached zero.
func (t Timer[T]) TimeIsUp() bool {
	return t.remaining == 0
}

// SamePurpose reports whether the timer currently carries tag.
func (t Timer[T]) SamePurpose(tag T) bool {
	return t.tag == tag
}

// Purpose returns the current tag.
func (t Timer[T]) Purpose() T {
	return t.tag
}

// Remaining returns the remaining time in ticks.
func (t Timer[T]) Remaining() float64 {
	return t.remaining
}

// Duration returns the full duration of the current tag.
func (t Timer[T]) Duration() float64 {
	return t.table.Duration(t.tag)
}

// PercentCompleted returns 1 - remaining/duration in [0, 1].
// A zero-length purpose counts as already complete.
func (t Timer[T]) PercentCompleted() float64 {
	d := t.Duration()
	if d == 0 {
		return 1
	}
	return 1 - t.remaining/d
}

// PercentRemaining is the complement of PercentCompleted.
func (t Timer[T]) PercentRemaining() float64 {
	return 1 - t.PercentCompleted()
}
