// Package confetti shows a short confetti burst right after the cursor when
// the user types at the end of a line.
//
// A Listener follows the host's active view and document edits on the event
// bus and asks the Controller for a debounced refresh. After the debounce
// window the Controller checks that the cursor sits one column before the end
// of its line and, if so, replaces the previous burst with a new decoration
// that releases itself after a fixed display duration.
//
// Lifecycle of a refresh:
//
//	Idle ──RequestRefresh──► Pending ──debounce──► PerformRefresh ──► Displaying
//	         ▲                 │ ▲                                         │
//	         │                 └─┘ (retrigger resets the timer)            │
//	         └────────────────────────── display timer expires ────────────┘
//
// Every method must be called from the host's UI goroutine; schedulers are
// expected to deliver timer callbacks there as well.
package confetti
