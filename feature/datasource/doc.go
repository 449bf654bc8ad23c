// Package datasource is the facade between callers and the diff engine.
//
// A Source owns the current snapshot of one list. Callers either hand it a
// fully built target snapshot via Apply, or use the named convenience
// operations (Append, Delete, Move, Shuffle, Reconfigure, Reload) that read
// the current snapshot, mutate a local copy and apply it. Each apply diffs
// current against target, hands the resulting plan to the configured render
// callback together with the animate flag, and only then adopts the target
// as the new current state.
//
// # Threading
//
// Snapshot construction may happen on any goroutine, but the renderer's
// visual state is single-threaded, so applies are serialized: a mutex
// queues concurrent Apply calls strict-FIFO in lock acquisition order, and
// the engine's notion of "previous" is always the last completed apply.
// There is no coalescing; every queued target is diffed and rendered.
//
// # Rendering
//
// The render callback is plain function-valued configuration, with no
// delegate protocols or view lifetime coupling. A nil callback makes the source
// headless, which is how the HTTP playground uses it: the plan is returned
// to the remote client, which is the actual renderer.
package datasource
