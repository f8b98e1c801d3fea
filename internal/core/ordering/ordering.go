// Package ordering decides the order initiatives appear in on the dashboard.
// This is part of the Functional Core - no I/O, only pure functions.
package ordering

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entry pairs an item with the attributes it is ordered by.
type Entry[T any] struct {
	Item T
	Name string
	// Deadline is the nearest open-task due date; zero when there is none.
	Deadline time.Time
	// Reserved marks the miscellaneous container, which always goes last.
	Reserved bool
}

// Order returns the items sorted for display:
//   - entries with a deadline come first, earliest date first
//   - entries without a deadline follow
//   - ties are broken by name using the collation rules of tag
//   - reserved entries are appended last, in their original relative order
func Order[T any](entries []Entry[T], tag language.Tag) []T {
	others := make([]Entry[T], 0, len(entries))
	var reserved []Entry[T]
	for _, e := range entries {
		if e.Reserved {
			reserved = append(reserved, e)
			continue
		}
		others = append(others, e)
	}

	// Collators are not safe for concurrent use.
	c := collate.New(tag)
	sort.SliceStable(others, func(i, j int) bool {
		return less(c, others[i], others[j])
	})

	out := make([]T, 0, len(entries))
	for _, e := range others {
		out = append(out, e.Item)
	}
	for _, e := range reserved {
		out = append(out, e.Item)
	}
	return out
}

func less[T any](c *collate.Collator, a, b Entry[T]) bool {
	aHas, bHas := !a.Deadline.IsZero(), !b.Deadline.IsZero()
	switch {
	case aHas && bHas:
		if !a.Deadline.Equal(b.Deadline) {
			return a.Deadline.Before(b.Deadline)
		}
	case aHas != bHas:
		return aHas
	}
	return c.CompareString(a.Name, b.Name) < 0
}
