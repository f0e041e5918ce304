package gallery

import (
	"fmt"

	"github.com/olofgunnarsson/photowall/pkg/album"
)

// ToggleSelect flips the selection state of the item with the given ID
// and notifies the selection callback. It reports the item's new state.
func (g *Gallery) ToggleSelect(id string) (bool, error) {
	g.mu.Lock()
	if !g.opts.Selectable {
		g.mu.Unlock()
		return false, ErrNotSelectable
	}

	if !g.hasItem(id) {
		g.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}

	_, was := g.selected[id]
	if was {
		delete(g.selected, id)
	} else {
		g.selected[id] = struct{}{}
	}

	notes := g.selectionNote()
	g.mu.Unlock()

	run(notes)
	return !was, nil
}

// ClearSelection empties the selection and notifies the callback.
// A call with nothing selected is a no-op.
func (g *Gallery) ClearSelection() {
	g.mu.Lock()
	if len(g.selected) == 0 {
		g.mu.Unlock()
		return
	}
	g.selected = make(map[string]struct{})
	notes := g.selectionNote()
	g.mu.Unlock()
	run(notes)
}

// Selection returns the selected items in album order.
func (g *Gallery) Selection() []album.Item {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selectionLocked()
}

// IsSelected reports whether the item with the given ID is selected.
func (g *Gallery) IsSelected(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.selected[id]
	return ok
}

// hasItem reports whether the album holds an item with the given ID.
// Callers must hold g.mu.
func (g *Gallery) hasItem(id string) bool {
	for i := range g.items {
		if g.items[i].ID == id {
			return true
		}
	}
	return false
}

// selectionLocked returns the selection in album order.
// Callers must hold g.mu.
func (g *Gallery) selectionLocked() []album.Item {
	if len(g.selected) == 0 {
		return nil
	}
	out := make([]album.Item, 0, len(g.selected))
	for _, it := range g.items {
		if _, ok := g.selected[it.ID]; ok {
			out = append(out, it)
		}
	}
	return out
}

// selectionNote returns the pending selection notification.
// Callers must hold g.mu.
func (g *Gallery) selectionNote() []func() {
	if g.onSelect == nil {
		return nil
	}
	sel := g.selectionLocked()
	fn := g.onSelect
	return []func(){func() { fn(sel) }}
}
