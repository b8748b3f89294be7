package headless

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// undoGroup is one undo step: the content before its first edit and after
// its last one.
type undoGroup struct {
	before string
	after  string
	source string
}

// history manages undo/redo for one model. Edits accumulate into the open
// group until an undo stop closes it.
type history struct {
	undoStack []undoGroup
	redoStack []undoGroup
	open      *undoGroup

	maxEntries int
}

func newHistory(maxEntries int) *history {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &history{maxEntries: maxEntries}
}

// record notes an edit from before to after. It opens a group if none is open.
func (h *history) record(source, before, after string) {
	if h.open == nil {
		h.open = &undoGroup{before: before, source: source}
	}
	h.open.after = after
	h.redoStack = nil
}

// stop closes the open group, if any.
func (h *history) stop() {
	if h.open == nil {
		return
	}
	h.undoStack = append(h.undoStack, *h.open)
	h.open = nil
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// reset drops all history. Used when content is assigned directly.
func (h *history) reset() {
	h.undoStack = nil
	h.redoStack = nil
	h.open = nil
}

func (h *history) undo() (undoGroup, error) {
	h.stop()
	if len(h.undoStack) == 0 {
		return undoGroup{}, ErrNothingToUndo
	}
	g := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, g)
	return g, nil
}

func (h *history) redo() (undoGroup, error) {
	if len(h.redoStack) == 0 {
		return undoGroup{}, ErrNothingToRedo
	}
	g := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, g)
	return g, nil
}

// depth returns the number of undo steps, counting an open group.
func (h *history) depth() int {
	n := len(h.undoStack)
	if h.open != nil {
		n++
	}
	return n
}
