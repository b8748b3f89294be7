// Package editor keeps a live code editor, or a side-by-side diff editor,
// in sync with a declarative description.
//
// A host describes the editor it wants with [Props] or [DiffProps] and
// hands every new description to Update. The controller owns the engine
// instance behind it: it waits for the shared engine to load, creates the
// instance once a mount node is available, and afterwards turns each
// description change into the smallest set of engine calls, field by field.
//
// Lifecycle:
//
//	New ─Mount→ awaiting-engine ─load→ ready ─mount node→ synced ─Unmount→ disposed
//
// Descriptions passed while the engine loads are stored; creation uses only
// the latest one. Unmount at any point releases everything and drops
// callbacks that were still in flight.
//
// Controllers are confined to the UI thread. Engine load results and
// debounced change notifications reach them through platform.Dispatch.
package editor
