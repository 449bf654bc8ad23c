// Package reorder implements the policy gate for interactive row reorders.
//
// A renderer tracking a drag gesture asks CanMove before lifting a row and
// ProposeMove when the row is dropped. The policy either enacts the drop by
// producing the snapshot with the row relocated, or rejects it. A rejected
// cross-group move is the one expected-at-runtime condition in the system
// and is reported as a non-move, not an error: the caller re-applies the
// unchanged current snapshot and the renderer visually reverts the drag.
//
// Reorder results are meant to be applied without animation, since the
// renderer is already tracking the row visually during the gesture.
package reorder
