// Package snapshot provides the value model for diffable sectioned lists.
//
// A Snapshot is an ordered description of sections and their ordered items,
// representing one logical state of a list. Callers build and mutate a
// snapshot on any goroutine, then hand it to the diff engine, which treats
// it as immutable for the duration of a single diff.
//
// # Identity
//
// Sections and items are referenced exclusively by opaque string
// identifiers. Item identity is decided by the caller and may cover only a
// subset of the item's fields: two values with different non-identity
// fields are still "the same" row. This contract is what makes in-place
// reconfiguration possible: identity must stay stable across content
// mutations and change only when the caller intends replace semantics.
//
// # Invariants
//
//   - Section identifiers are unique within a snapshot.
//   - An item identifier belongs to at most one section at a time.
//   - Referencing an unknown section or item is a programming error and
//     fails fast, except for deletion, which is documented as idempotent.
//
// # Error policy
//
// Mutations validate all inputs before touching state, so a failed call
// leaves the snapshot unmodified. Deleting identifiers that are not present
// is a silent no-op; every other misuse returns a sentinel error from
// errors.go wrapped with the offending identifier.
package snapshot
