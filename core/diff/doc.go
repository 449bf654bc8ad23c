// Package diff computes the minimal ordered operation list that transforms
// one snapshot into another.
//
// The engine is a pure function over two snapshot values: it never retains
// either snapshot past a single call, performs no I/O, and is deterministic:
// the same (previous, next) pair always yields the same plan. Complexity
// is O(n log n) in the total item count, using identity-indexed lookups and
// a longest-increasing-subsequence pass for move detection rather than
// pairwise comparison.
//
// # Plan semantics
//
// A plan reads as one batch update against the previous layout:
//
//  1. item deletes (positions refer to the previous layout)
//  2. section deletes, then section inserts
//  3. item moves and inserts, merged in ascending target order
//     (positions refer to the next layout)
//  4. reconfigures, then reloads
//
// Applying the operations in order to a model holding the previous layout
// yields exactly the next layout; Layout.Apply is the reference
// implementation of that contract.
//
// # Move detection
//
// An item present in both snapshots never degrades to delete+insert. Within
// a section, items whose relative order among the retained items is
// unchanged emit nothing, even when absolute indices shifted because of
// surrounding inserts or deletes; the rest emit exactly one move. An item
// that changed section emits one cross-section move.
//
// The operation set has no section move: retained sections whose relative
// order changed are rebuilt with a section delete plus insert, and their
// rows re-inserted.
package diff
