// Package timeline windows an initiative's update history for display.
// This is part of the Functional Core - no I/O, only pure functions.
package timeline

// DefaultSize is how many entries are shown before the list is expanded.
const DefaultSize = 3

// Window is the visible slice of an already-sorted history.
type Window[T any] struct {
	Visible  []T
	Total    int
	HasMore  bool // more entries exist than the collapsed window shows
	Expanded bool
}

// Apply returns the first size entries, or all of them when showAll is set.
// Entries are never re-sorted. A size below 1 means DefaultSize.
func Apply[T any](entries []T, size int, showAll bool) Window[T] {
	if size < 1 {
		size = DefaultSize
	}

	w := Window[T]{
		Total:    len(entries),
		HasMore:  len(entries) > size,
		Expanded: showAll,
	}

	if showAll || !w.HasMore {
		w.Visible = entries
		return w
	}
	w.Visible = entries[:size]
	return w
}
